package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"
)

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends messages over SMTP.
type EmailNotifier struct {
	From   string
	To     []string
	dialer mailSender
}

// NewEmailNotifier creates an SMTP notifier using STARTTLS when the server
// offers it.
func NewEmailNotifier(server string, port int, username, password, from string, to []string) *EmailNotifier {
	d := gomail.NewDialer(server, port, username, password)
	d.TLSConfig = &tls.Config{ServerName: server, MinVersion: tls.VersionTLS12}
	return &EmailNotifier{From: from, To: to, dialer: d}
}

func (e *EmailNotifier) Name() string { return "email" }

// Send mails text as an HTML body. The first line, stripped of tags, becomes
// the subject.
func (e *EmailNotifier) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", e.To...)
	m.SetHeader("Subject", subjectOf(text))
	m.SetBody("text/html", "<pre style=\"font-family: sans-serif\">"+text+"</pre>")
	m.AddAlternative("text/plain", plainText(text))

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func plainText(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

func subjectOf(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	subject := strings.TrimSpace(plainText(line))
	if subject == "" {
		return "SignalScope notification"
	}
	return subject
}
