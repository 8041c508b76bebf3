package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/logger"
)

type sendGridService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridService) SendOTP(ctx context.Context, email, name string, purpose domain.OTPPurpose, code string, minutes int) error {
	subject, intro := otpCopy(purpose)

	body := fmt.Sprintf("Hello %s,\n\n%s\n\nYour verification code is:\n\n%s\n\nIt expires in %d minutes. If you did not request this, you can ignore this email.\n\nThe Zilcycler Team",
		displayName(name), intro, code, minutes)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(name, email)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}

	logger.Debug("OTP email sent", "purpose", purpose)
	return nil
}

func otpCopy(purpose domain.OTPPurpose) (subject, intro string) {
	switch purpose {
	case domain.OTPPurposeSignup:
		return "Verify your email address", "Use this code to finish creating your Zilcycler account."
	case domain.OTPPurposeReset:
		return "Reset your password", "A password reset was requested for your account."
	case domain.OTPPurposeChangePassword:
		return "Confirm your password change", "You asked to change your account password."
	default:
		return "Your verification code", "Use this code to continue."
	}
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
