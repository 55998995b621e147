package mailservice

import (
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	testCases := []struct {
		name        string
		renderErr   error
		dialErr     error
		expectedErr bool
	}{
		{name: "sent"},
		{name: "template failure", renderErr: errors.New("bad template"), expectedErr: true},
		{name: "dial failure", dialErr: errors.New("connection refused"), expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRenderer := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer:   mockDialer,
				renderer: mockRenderer,
				sender:   "sender@example.com",
			}

			data := welcomeData{Name: "Ada", Username: "ada"}
			if tc.renderErr != nil {
				mockRenderer.On("Render", welcomeTemplate, data).Return(nil, tc.renderErr)
			} else {
				mockRenderer.On("Render", welcomeTemplate, data).Return(&email{Subject: "Welcome", Plain: "Hi Ada", HTML: "<p>Hi Ada</p>"}, nil)
				mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
					return len(msgs) == 1 &&
						msgs[0].GetHeader("To")[0] == "ada@example.com" &&
						msgs[0].GetHeader("From")[0] == "sender@example.com" &&
						msgs[0].GetHeader("Subject")[0] == "Welcome"
				})).Return(tc.dialErr)
			}

			err := mailer.send("ada@example.com", data, welcomeTemplate)
			assert.Equal(t, tc.expectedErr, err != nil)

			mockRenderer.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}
