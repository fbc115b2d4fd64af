// Package mail implements the outbound Notifier over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"ideamatch/config"
	"ideamatch/internal/domain/service"
)

// smtpMailer delivers OTP codes and reset links through an SMTP relay.
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.MailService, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail configuration must be provided")
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		from:   cfg.Mail.From,
	}, nil
}

// SendOTP delivers a verification passcode. The plaintext OTP exists only in
// this message; it is stored hashed everywhere else.
func (m *smtpMailer) SendOTP(ctx context.Context, email, otp string) error {
	body := fmt.Sprintf(otpTemplate, otp, time.Now().Year())

	return m.send(ctx, email, "Verify Your Email - Idea-Investor Matcher", body)
}

// SendResetLink delivers the password-reset deep link carrying the raw token.
func (m *smtpMailer) SendResetLink(ctx context.Context, email, resetURL string) error {
	body := fmt.Sprintf(resetTemplate, resetURL, time.Now().Year())

	return m.send(ctx, email, "Reset Your Password - Idea-Investor Matcher", body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "mail delivery aborted")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrapf(err, "failed to send mail to %s", to)
	}

	return nil
}

const otpTemplate = `<div style="font-family: Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 30px; text-align: center;">
  <h1 style="color: #1e3a8a;">Welcome to Idea-Investor Matcher!</h1>
  <p>Thank you for joining our platform, where innovators meet investors. To complete your registration, please use the verification code below:</p>
  <div style="margin: 25px 0; padding: 20px; background: #e0f2fe; border-radius: 8px; display: inline-block;">
    <h2 style="font-size: 36px; letter-spacing: 4px; color: #0284c7; margin: 0;">%s</h2>
  </div>
  <p>This code will expire in <strong>10 minutes</strong>.</p>
  <p style="font-size: 12px; color: #9ca3af;">If you did not request this code, you can safely ignore this email.</p>
  <p style="font-size: 12px; color: #9ca3af;">&copy; %d Idea-Investor Matcher. All rights reserved.</p>
</div>`

const resetTemplate = `<div style="font-family: Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 30px; text-align: center;">
  <h1 style="color: #1e3a8a;">Reset Your Password</h1>
  <p>We received a request to reset your password. Click the button below to set a new password for your account:</p>
  <div style="margin: 25px 0;">
    <a href="%s" target="_blank" style="display: inline-block; padding: 15px 25px; background-color: #0284c7; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: bold;">Reset Password</a>
  </div>
  <p>This link will expire in <strong>10 minutes</strong>. If you did not request a password reset, you can safely ignore this email.</p>
  <p style="font-size: 12px; color: #9ca3af;">&copy; %d Idea-Investor Matcher. All rights reserved.</p>
</div>`
