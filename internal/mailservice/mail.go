package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

func NewMailer(host string, port int, username, password, sender string, tp TemplateRenderer) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &Mail{
		dialer:   dialer,
		sender:   sender,
		renderer: tp,
	}
}

// send renders templateFile with data and delivers it to recipient as a multipart message.
func (m *Mail) send(recipient string, data any, templateFile string) error {
	e, err := m.renderer.Render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.Plain)
	msg.AddAlternative("text/html", e.HTML)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dialer.DialAndSend(msg)
}
