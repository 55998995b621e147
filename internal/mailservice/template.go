package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

// email is a rendered template: every template file defines subject, plainBody and htmlBody.
type email struct {
	Subject string
	Plain   string
	HTML    string
}

// Template renders the embedded email templates. Each file is parsed once.
type Template struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

func NewTemplate() *Template {
	return &Template{parsed: make(map[string]*template.Template)}
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	if t, ok := tp.parsed[name]; ok {
		return t, nil
	}

	t, err := template.New(name).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %s: %w", name, err)
	}
	tp.parsed[name] = t

	return t, nil
}

// Render executes the named template with data.
func (tp *Template) Render(name string, data any) (*email, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, err
	}

	var out email
	for _, part := range []struct {
		block string
		dst   *string
	}{
		{"subject", &out.Subject},
		{"plainBody", &out.Plain},
		{"htmlBody", &out.HTML},
	} {
		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, part.block, data); err != nil {
			return nil, fmt.Errorf("render %s of %s: %w", part.block, name, err)
		}
		*part.dst = buf.String()
	}

	return &out, nil
}
