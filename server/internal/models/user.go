package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                        uint   `gorm:"primaryKey"`
	Email                     string `gorm:"uniqueIndex;not null"`
	Password                  string `gorm:"not null" json:"-"`
	FirstName                 string
	LastName                  string
	TimeZone                  string `gorm:"not null;default:UTC"`
	ReminderTime              string `gorm:"index"` // HH:MM, UTC
	EmailNotificationsEnabled bool   `gorm:"not null;default:false"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// DisplayName prefers the first name and falls back to the email.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}
