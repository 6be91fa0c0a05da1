package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an email using SMTP
func SendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUsername := os.Getenv("SMTP_USERNAME")
	smtpPassword := os.Getenv("SMTP_PASSWORD")

	message := fmt.Sprintf("Subject: %s\r\n"+
		"To: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", subject, to, body)

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	err := smtp.SendMail(addr, auth, smtpUsername, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// sendHTMLEmail sends an HTML email through the gomail dialer
func sendHTMLEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(to, name string) error {
	body := fmt.Sprintf(`
		<h2>Welcome to MemoWorks, %s!</h2>
		<p>Your account has been created. You can now sign in and start organizing your tasks.</p>
		<p>If you did not create this account, please contact support.</p>
	`, name)

	return sendHTMLEmail(to, "Welcome to MemoWorks", body)
}

// SendGroupEmail notifies a group admin about a change to their group
func SendGroupEmail(to, groupName, action string) error {
	body := fmt.Sprintf(`
		<h2>Group update</h2>
		<p>The group <strong>%s</strong> has been %s.</p>
		<p>Sign in to review your groups.</p>
	`, groupName, action)

	return sendHTMLEmail(to, fmt.Sprintf("Group %s %s", groupName, action), body)
}

func passwordResetEmailBody(resetToken string, ttl time.Duration) string {
	return fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>You have requested to reset your password. Click the link below to proceed:</p>
		<p><a href="%s/reset-password?token=%s">Reset Password</a></p>
		<p>This link will expire in %d minutes.</p>
		<p>If you didn't request this reset, please ignore this email.</p>
	`, os.Getenv("FRONTEND_URL"), resetToken, int(ttl.Minutes()))
}

// SendPasswordResetEmail sends a password reset email. The stated
// lifetime matches the token's configured validity window.
func SendPasswordResetEmail(to, resetToken string, ttl time.Duration) error {
	return SendEmail(to, "Password Reset Request", passwordResetEmailBody(resetToken, ttl))
}
