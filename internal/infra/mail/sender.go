package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

var authFailureTemplate = template.Must(template.New("auth_failure").Parse(`<p>A sessão do WhatsApp foi invalidada.</p>
<p><b>Motivo:</b> {{.Reason}}</p>
<p><b>Quando:</b> {{.OccurredAt}}</p>
<p>O arquivo {{.SessionFile}} foi excluído. Reinicie o serviço e escaneie o novo QR code.</p>
`))

// Dialer é o pedaço do gomail.Dialer usado aqui.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) dialer() Dialer {
	return gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
}

// AuthFailureNotifier avisa o operador quando a sessão cai e precisa de novo pareamento.
type AuthFailureNotifier struct {
	Sender      *EmailSender
	To          string
	SessionFile string
	dial        Dialer
}

func NewAuthFailureNotifier(sender *EmailSender, to, sessionFile string) *AuthFailureNotifier {
	return &AuthFailureNotifier{
		Sender:      sender,
		To:          to,
		SessionFile: sessionFile,
		dial:        sender.dialer(),
	}
}

func (n *AuthFailureNotifier) NotifyAuthFailure(reason string) error {
	m, err := n.buildMessage(reason, time.Now())
	if err != nil {
		return err
	}
	if err := n.dial.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (n *AuthFailureNotifier) buildMessage(reason string, at time.Time) (*gomail.Message, error) {
	data := AuthFailureEmailData{
		Reason:      reason,
		SessionFile: n.SessionFile,
		OccurredAt:  at.Format(time.RFC3339),
	}

	var body bytes.Buffer
	if err := authFailureTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.Sender.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", "⚠️ WhatsApp desconectado: novo pareamento necessário")
	m.SetBody("text/html", body.String())
	return m, nil
}
