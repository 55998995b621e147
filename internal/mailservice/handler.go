package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store"
)

const (
	welcomeTemplate = "welcome_email.html"
	maxRetries      = 5
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		retryDelay: 500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendWelcomeEmail consumes user.created events and mails every new user that has an email
// address. It returns once the consumer is registered; delivery runs until Close.
func (s *MailService) SendWelcomeEmail() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.BlogExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var u store.User
				err := json.Unmarshal(msg.Body, &u)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				if u.Email == "" {
					s.logger.Info("user has no email address", slog.String("id", u.ID))
					msg.Ack(false)
					continue
				}

				s.deliver(u)
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()
}

// deliver sends the welcome email, retrying with exponential backoff and jitter.
func (s *MailService) deliver(u store.User) {
	payload := welcomeData{
		Name:     u.Name,
		Username: u.Username,
		IsAuthor: u.IsAuthor,
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(u.Email, payload, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", u.Email))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.retryDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", u.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", u.Email))
}

// Close stops consuming and waits for the message in flight.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
