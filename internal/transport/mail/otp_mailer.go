package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/zipcart/auth-api/internal/domain"
)

// OtpMailer delivers one-time codes over plain SMTP. It implements
// service.OtpMailSender and is always invoked outside the request
// transaction.
type OtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewOtpMailer(host, port, username, password, from string) *OtpMailer {
	return &OtpMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (m *OtpMailer) SendOtp(ctx context.Context, email, name string, code int, purpose domain.OtpPurpose) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	subject := "Verify your Zipcart email address"
	action := "verify your email address"
	if purpose == domain.OtpPurposeResetPassword {
		subject = "Your Zipcart password reset code"
		action = "reset your password"
	}

	greeting := "Hi"
	if strings.TrimSpace(name) != "" {
		greeting = "Hi " + strings.TrimSpace(name)
	}
	body := fmt.Sprintf("%s,\n\nUse the following code to %s: %04d\n\nThe code expires in 60 minutes. If you did not request this, ignore this email.", greeting, action, code)

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 7bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
