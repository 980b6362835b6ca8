package handlers

import (
	"errors"
	"net/http"

	"github.com/Aryanthe1/Goal-Sync/server/internal/repository"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	if currentUser(c) != nil {
		redirect(c, "/dashboard")
		return
	}
	render(c, h.log, http.StatusOK, "Log in", views.Login(csrfToken(c), ""))
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := repository.GetUserByEmail(c.Request.Context(), email)
	if err != nil || !user.CheckPassword(password) {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			h.log.Error("Failed to look up user", zap.Error(err))
		}
		render(c, h.log, http.StatusOK, "Log in", views.Login(csrfToken(c), "Invalid email or password."))
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		render(c, h.log, http.StatusOK, "Log in", views.Login(csrfToken(c), "Failed to log in, please try again."))
		return
	}
	h.log.Info("User logged in", zap.Uint("userID", user.ID))
	c.Header("HX-Trigger", "login")
	redirect(c, "/dashboard")
}

func (h *AuthHandler) ShowRegisterPage(c *gin.Context) {
	if currentUser(c) != nil {
		redirect(c, "/dashboard")
		return
	}
	render(c, h.log, http.StatusOK, "Register", views.Register(csrfToken(c), ""))
}

func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if err := utils.ValidateRegistration(email, password, confirm); err != nil {
		render(c, h.log, http.StatusOK, "Register", views.Register(csrfToken(c), err.Error()))
		return
	}

	user, err := repository.CreateUser(c.Request.Context(), email, password, c.PostForm("first_name"), c.PostForm("last_name"))
	if err != nil {
		msg := "Failed to register, please try again."
		if errors.Is(err, repository.ErrDuplicate) {
			msg = "An account with this email already exists."
		} else {
			h.log.Error("Error creating user", zap.Error(err))
		}
		render(c, h.log, http.StatusOK, "Register", views.Register(csrfToken(c), msg))
		return
	}

	if err := h.startSession(c, user.ID); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		render(c, h.log, http.StatusOK, "Log in", views.Login(csrfToken(c), "Account created, please log in."))
		return
	}
	h.log.Info("User registered", zap.Uint("userID", user.ID))
	c.Header("HX-Trigger", "login")
	redirect(c, "/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to logout")
		return
	}

	// Trigger the nav bar to re-render itself as logged-out
	c.Header("HX-Trigger", "logout")
	c.Set(ContextUserKey, nil)
	redirect(c, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(SessionUserIDKey, userID)
	return session.Save()
}
