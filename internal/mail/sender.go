package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/connect-inmobiliaria/crm-service/internal/config"
)

// Sender delivers transactional mail to prospects.
type Sender interface {
	SendValuationReport(to, name, body string) error
}

// EmailSender ships mail over SMTP.
type EmailSender struct {
	cfg config.MailConfig
}

// NewEmailSender builds the SMTP sender.
func NewEmailSender(cfg config.MailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

var valuationTemplate = template.Must(template.New("valuation").Parse(`
<p>Hola {{.Name}},</p>
<p>{{.Body}}</p>
<p>Saludos,<br/>Connect Inmobiliaria, Córdoba</p>
`))

type valuationData struct {
	Name string
	Body string
}

// SendValuationReport emails the valuation result to the prospect.
func (s *EmailSender) SendValuationReport(to, name, body string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("mail not configured")
	}

	var rendered bytes.Buffer
	if err := valuationTemplate.Execute(&rendered, valuationData{Name: name, Body: body}); err != nil {
		return fmt.Errorf("render valuation email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Tu tasación online de Connect Inmobiliaria")
	m.SetBody("text/html", rendered.String())

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send valuation email: %w", err)
	}
	return nil
}
