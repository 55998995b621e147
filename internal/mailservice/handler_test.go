package mailservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/bloggraph/internal/common"
)

func newTestService(mc common.MessageConsumer, m Mailer, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mc,
		m:          m,
		logger:     logger,
		retryDelay: time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func TestSendWelcomeEmail(t *testing.T) {
	mockMC := &MockMessageConsumer{Bodies: []string{
		`{"id": "u1", "name": "Ada", "username": "ada", "email": "ada@example.com", "isAuthor": true}`,
		`{"id": "u2", "name": "Anon", "username": "anon"}`,
		`not json`,
		`{"id": "u3", "name": "Grace", "username": "grace", "email": "grace@example.com"}`,
	}}
	mockMC.On("Consume", common.UserCreatedKey, common.BlogExchange, common.UserCreatedQueue).Return(nil)

	mockMailer := &MockMailer{}

	mockLogger := new(MockLogger)
	mockLogger.On("Info", "welcome email sent", mock.Anything).Twice()
	mockLogger.On("Info", "user has no email address", mock.Anything).Once()
	mockLogger.On("Error", "could not unmarshal message", mock.Anything).Once()
	mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()

	s := newTestService(mockMC, mockMailer, mockLogger)
	s.SendWelcomeEmail()

	// the consumer closes its channel after the last body
	s.wg.Wait()

	assert.Equal(t, []string{"ada@example.com", "grace@example.com"}, mockMailer.Emails())
	assert.Equal(t, welcomeData{Name: "Ada", Username: "ada", IsAuthor: true}, mockMailer.Data()[0])

	mockMC.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
}

func TestSendWelcomeEmailRetries(t *testing.T) {
	testCases := []struct {
		name      string
		failures  int
		wantCalls int
		wantSent  bool
	}{
		{name: "succeeds after retries", failures: 2, wantCalls: 3, wantSent: true},
		{name: "gives up", failures: maxRetries, wantCalls: maxRetries, wantSent: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockMC := &MockMessageConsumer{Bodies: []string{`{"id": "u1", "email": "ada@example.com"}`}}
			mockMC.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			mockMailer := &MockMailer{Failures: tc.failures}

			mockLogger := new(MockLogger)
			if tc.wantSent {
				mockLogger.On("Info", "welcome email sent", mock.Anything).Once()
			} else {
				mockLogger.On("Error", "could not send welcome email", mock.Anything).Once()
			}
			mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()

			s := newTestService(mockMC, mockMailer, mockLogger)
			s.SendWelcomeEmail()
			s.wg.Wait()

			assert.Equal(t, tc.wantCalls, mockMailer.Calls())
			assert.Equal(t, tc.wantSent, len(mockMailer.Emails()) == 1)
			mockLogger.AssertExpectations(t)
		})
	}
}

func TestSendWelcomeEmailConsumeError(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMC.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	mockLogger := new(MockLogger)
	mockLogger.On("Error", "could not consume message", mock.Anything).Once()

	s := newTestService(mockMC, &MockMailer{}, mockLogger)
	s.SendWelcomeEmail()
	s.Close()

	mockLogger.AssertExpectations(t)
}
