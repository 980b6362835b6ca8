package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"go.uber.org/zap"
)

// Mailer delivers check-in reminders.
type Mailer interface {
	SendReminder(ctx context.Context, user models.User, day time.Time) error
}

// EmailService is the default Mailer. It renders the reminder and writes it
// to the log instead of talking to an SMTP server.
type EmailService struct {
	log *zap.Logger
}

func NewEmailService(log *zap.Logger) *EmailService {
	return &EmailService{log: log}
}

// SendReminder logs the reminder that would be mailed to user for day.
func (s *EmailService) SendReminder(ctx context.Context, user models.User, day time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject, body := reminderMessage(user, day)
	s.log.Info("Sending reminder email",
		zap.String("to", user.Email),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

func reminderMessage(user models.User, day time.Time) (subject, body string) {
	subject = "Time for your Goal-Sync check-in"
	body = fmt.Sprintf("Hi %s,\n\nYou haven't logged your wellness check-in for %s yet. "+
		"It only takes a minute and keeps your burnout trend accurate.\n",
		user.DisplayName(), day.Format(utils.DayLayout))
	return subject, body
}
