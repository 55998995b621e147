package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tp := NewTemplate()

	testCases := []struct {
		name         string
		templateName string
		data         welcomeData
		contains     string
		expectedErr  bool
	}{
		{
			name:         "author",
			templateName: welcomeTemplate,
			data:         welcomeData{Name: "Ada", Username: "ada", IsAuthor: true},
			contains:     "publish blogs",
		},
		{
			name:         "reader",
			templateName: welcomeTemplate,
			data:         welcomeData{Name: "Grace", Username: "grace"},
			contains:     "Start reading",
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tp.Render(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)
			if tc.expectedErr {
				return
			}

			require.NotNil(t, e)
			assert.Contains(t, e.Subject, tc.data.Name)
			assert.Contains(t, e.Plain, tc.contains)
			assert.Contains(t, e.HTML, tc.contains)
			assert.Contains(t, e.HTML, tc.data.Username)
		})
	}
}

func TestRender_ParsesOnce(t *testing.T) {
	tp := NewTemplate()

	_, err := tp.Render(welcomeTemplate, welcomeData{Name: "Ada"})
	require.NoError(t, err)
	first := tp.parsed[welcomeTemplate]

	_, err = tp.Render(welcomeTemplate, welcomeData{Name: "Grace"})
	require.NoError(t, err)

	assert.Len(t, tp.parsed, 1)
	assert.Same(t, first, tp.parsed[welcomeTemplate])
}
