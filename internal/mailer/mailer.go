package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"whiterabbit/internal/config"
)

// ActivationSubject is the subject line of the registration e-mail.
const ActivationSubject = "Validation de votre inscription sur White Rabbit's Blog"

var activationTemplate = template.Must(template.New("activation").Parse(`<!DOCTYPE html>
<html lang="fr">
<body>
<p>Bonjour {{.Name}},</p>
<p>Merci pour votre inscription sur White Rabbit's Blog.</p>
<p>Votre code de validation : <strong>{{.Code}}</strong></p>
<p>Vous pouvez aussi valider votre compte avec le jeton suivant :</p>
<p><code>{{.Token}}</code></p>
</body>
</html>
`))

// ActivationEmail holds what the registration e-mail shows to the user.
type ActivationEmail struct {
	To    string
	Name  string
	Code  int
	Token string
}

// Sender delivers activation e-mails.
type Sender interface {
	SendActivation(ctx context.Context, email ActivationEmail) error
}

// Mailer sends e-mails over SMTP. With no SMTP host configured it only logs.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
	logger *zerolog.Logger
}

var _ Sender = (*Mailer)(nil)

// New creates a Mailer from SMTP settings.
func New(cfg config.SMTPConfig, logger *zerolog.Logger) *Mailer {
	m := &Mailer{from: cfg.From, logger: logger}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// SendActivation renders and sends the activation e-mail.
func (m *Mailer) SendActivation(_ context.Context, email ActivationEmail) error {
	if email.To == "" {
		return fmt.Errorf("no recipient specified")
	}
	body, err := RenderActivation(email)
	if err != nil {
		return err
	}

	if m.dialer == nil {
		m.logger.Warn().Str("to", email.To).Msg("smtp not configured, activation e-mail not sent")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", ActivationSubject)
	msg.SetBody("text/html", body)
	msg.AddAlternative("text/plain", fmt.Sprintf("Votre code de validation : %d\nJeton : %s\n", email.Code, email.Token))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send activation e-mail: %w", err)
	}
	return nil
}

// RenderActivation returns the HTML body of the activation e-mail.
func RenderActivation(email ActivationEmail) (string, error) {
	var buf bytes.Buffer
	if err := activationTemplate.Execute(&buf, email); err != nil {
		return "", fmt.Errorf("render activation e-mail: %w", err)
	}
	return buf.String(), nil
}
