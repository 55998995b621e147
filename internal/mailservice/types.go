package mailservice

import (
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/bloggraph/internal/common"
)

type MailService struct {
	mb         common.MessageConsumer
	m          Mailer
	logger     MailLogger
	retryDelay time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// Mail sends rendered templates over SMTP, one dial at a time.
type Mail struct {
	mu       sync.Mutex
	dialer   Dialer
	renderer TemplateRenderer
	sender   string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateRenderer interface {
	Render(name string, data any) (*email, error)
}

// welcomeData is the template data of welcome_email.html.
type welcomeData struct {
	Name     string
	Username string
	IsAuthor bool
}
