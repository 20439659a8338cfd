package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP delivers HTML mail over plain SMTP with optional PLAIN auth. STARTTLS
// is negotiated when the server advertises it.
type SMTP struct {
	Host string
	Port int
	From string
	User string
	Pass string
}

func New(host string, port int, from, user, pass string) *SMTP {
	return &SMTP{
		Host: strings.TrimSpace(host),
		Port: port,
		From: strings.TrimSpace(from),
		User: strings.TrimSpace(user),
		Pass: strings.TrimSpace(pass),
	}
}

func (s *SMTP) Send(ctx context.Context, to, name, subject, htmlBody string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("empty recipient email")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	if name != "" {
		fmt.Fprintf(&buf, "To: %s <%s>\r\n", name, to)
	} else {
		fmt.Fprintf(&buf, "To: %s\r\n", to)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n", htmlBody)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}
	return smtp.SendMail(addr, auth, s.From, []string{to}, buf.Bytes())
}
