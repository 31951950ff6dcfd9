// Package mail envía los emails transaccionales (verificación y redefinición de senha) por SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/pkg/config"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

//go:embed templates/*.html
var templatesFS embed.FS

// Tipos de email, usados también como etiqueta de métricas.
const (
	KindVerification  = "verification"
	KindPasswordReset = "password_reset"
)

const (
	subjectVerification  = "Verifique seu email - Sistema de Encartes"
	subjectPasswordReset = "Redefinição de Senha - Sistema de Encartes"
)

// Sender es lo que el mailer necesita de gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SendObserver recibe el resultado de cada envío.
type SendObserver func(kind string, err error)

// SMTPMailer implementa ports.Mailer con gomail y plantillas html/template embebidas.
type SMTPMailer struct {
	sender      Sender
	from        string
	baseURL     string
	frontendURL string
	verifyTpl   *template.Template
	resetTpl    *template.Template
	observe     SendObserver
	now         func() time.Time
}

type emailData struct {
	Name string
	URL  string
	Year int
}

// NewSMTPMailer arma el dialer SMTP desde la configuración.
func NewSMTPMailer(mailCfg config.MailConfig, urls config.URLConfig, observe SendObserver) (*SMTPMailer, error) {
	d := gomail.NewDialer(mailCfg.Host, mailCfg.Port, mailCfg.User, mailCfg.Password)
	d.SSL = mailCfg.Secure
	return NewMailer(d, mailCfg.From, urls, observe)
}

// NewMailer construye el mailer sobre un Sender arbitrario.
func NewMailer(sender Sender, from string, urls config.URLConfig, observe SendObserver) (*SMTPMailer, error) {
	verifyTpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/verify_email.html")
	if err != nil {
		return nil, fmt.Errorf("parse verify template: %w", err)
	}
	resetTpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/reset_password.html")
	if err != nil {
		return nil, fmt.Errorf("parse reset template: %w", err)
	}
	if observe == nil {
		observe = func(string, error) {}
	}
	return &SMTPMailer{
		sender:      sender,
		from:        from,
		baseURL:     urls.BaseURL,
		frontendURL: urls.FrontendURL,
		verifyTpl:   verifyTpl,
		resetTpl:    resetTpl,
		observe:     observe,
		now:         time.Now,
	}, nil
}

// SendEmailVerification envía el link BASE_URL/v1/auth/verify-email?token=...
func (m *SMTPMailer) SendEmailVerification(ctx context.Context, to, name, token string) error {
	link := m.baseURL + "/v1/auth/verify-email?token=" + url.QueryEscape(token)
	return m.send(ctx, KindVerification, m.verifyTpl, to, subjectVerification, name, link)
}

// SendPasswordReset envía el link FRONTEND_URL/auth?token=...
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	link := m.frontendURL + "/auth?token=" + url.QueryEscape(token)
	return m.send(ctx, KindPasswordReset, m.resetTpl, to, subjectPasswordReset, name, link)
}

func (m *SMTPMailer) send(ctx context.Context, kind string, tpl *template.Template, to, subject, name, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := m.render(tpl, emailData{Name: name, URL: link, Year: m.now().Year()})
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	err = m.sender.DialAndSend(msg)
	m.observe(kind, err)
	if err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	return nil
}

func (m *SMTPMailer) render(tpl *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}
