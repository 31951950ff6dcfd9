package mail

import (
	"context"
	"errors"
	"mime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/encartes-api/pkg/config"
)

type captureSender struct {
	msgs []*gomail.Message
	err  error
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	s.msgs = append(s.msgs, m...)
	return s.err
}

type observed struct {
	kind string
	err  error
}

func newTestMailer(t *testing.T, sender Sender) (*SMTPMailer, *[]observed) {
	t.Helper()
	var got []observed
	m, err := NewMailer(sender, `"Encartes" <no-reply@encartes.local>`, config.URLConfig{
		BaseURL:     "https://api.encartes.com.br",
		FrontendURL: "https://app.encartes.com.br",
	}, func(kind string, err error) { got = append(got, observed{kind, err}) })
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return m, &got
}

// subjectOf decodifica el Subject, que gomail guarda en RFC 2047 si lleva acentos.
func subjectOf(t *testing.T, msg *gomail.Message) string {
	t.Helper()
	h := msg.GetHeader("Subject")
	require.Len(t, h, 1)
	dec := new(mime.WordDecoder)
	out, err := dec.DecodeHeader(h[0])
	require.NoError(t, err)
	return out
}

func TestSendEmailVerification(t *testing.T) {
	sender := &captureSender{}
	m, got := newTestMailer(t, sender)

	require.NoError(t, m.SendEmailVerification(context.Background(), "ana@loja.com", "Ana", "abc123"))
	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, []string{"ana@loja.com"}, msg.GetHeader("To"))
	assert.Equal(t, subjectVerification, subjectOf(t, msg))
	assert.Equal(t, []observed{{KindVerification, nil}}, *got)
}

func TestRender_Verificacion(t *testing.T) {
	m, _ := newTestMailer(t, &captureSender{})
	body, err := m.render(m.verifyTpl, emailData{
		Name: "Ana <b>",
		URL:  "https://api.encartes.com.br/v1/auth/verify-email?token=abc123",
		Year: 2026,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Olá, Ana &lt;b&gt;!")
	assert.Contains(t, body, "https://api.encartes.com.br/v1/auth/verify-email?token=abc123")
	assert.Contains(t, body, "Este link expira em 24 horas.")
	assert.Contains(t, body, "&copy; 2026 Sistema de Encartes")
}

func TestRender_Reset(t *testing.T) {
	m, _ := newTestMailer(t, &captureSender{})
	body, err := m.render(m.resetTpl, emailData{Name: "Ana", URL: "https://app.encartes.com.br/auth?token=zz", Year: 2026})
	require.NoError(t, err)
	assert.Contains(t, body, "https://app.encartes.com.br/auth?token=zz")
	assert.Contains(t, body, "Este link expira em 1 hora.")
	assert.NotContains(t, body, "24 horas")
}

func TestSendPasswordReset_Error(t *testing.T) {
	sender := &captureSender{err: errors.New("535 auth failed")}
	m, got := newTestMailer(t, sender)

	err := m.SendPasswordReset(context.Background(), "ana@loja.com", "Ana", "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
	require.Len(t, *got, 1)
	assert.Equal(t, KindPasswordReset, (*got)[0].kind)
	assert.Error(t, (*got)[0].err)
	assert.Equal(t, subjectPasswordReset, subjectOf(t, sender.msgs[0]))
}

func TestSend_ContextoCancelado(t *testing.T) {
	sender := &captureSender{}
	m, _ := newTestMailer(t, sender)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.SendEmailVerification(ctx, "a@b.com", "A", "t"), context.Canceled)
	assert.Empty(t, sender.msgs)
}
