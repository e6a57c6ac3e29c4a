package sendaptitudereport

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
	markdown  = goldmark.New(goldmark.WithExtensions(extension.Linkify))
)

// report is the rendered message for every channel.
type report struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

type reportData struct {
	*Input
	Greeting string
}

func renderReport(input *Input) (*report, error) {
	data := reportData{Input: input, Greeting: input.Name}
	if data.Greeting == "" {
		data.Greeting = "there"
	}

	var text bytes.Buffer
	if err := templates.ExecuteTemplate(&text, "report.md.tmpl", data); err != nil {
		return nil, fmt.Errorf("render email body: %w", err)
	}

	var html bytes.Buffer
	if err := markdown.Convert(text.Bytes(), &html); err != nil {
		return nil, fmt.Errorf("convert email body: %w", err)
	}

	var sms bytes.Buffer
	if err := templates.ExecuteTemplate(&sms, "report.sms.tmpl", data); err != nil {
		return nil, fmt.Errorf("render sms body: %w", err)
	}

	subject := fmt.Sprintf("Your aptitude score: %d/100", input.CalculatedScore)
	if input.Profession != "" {
		subject = fmt.Sprintf("Your aptitude score for %s: %d/100", input.Profession, input.CalculatedScore)
	}

	return &report{
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
		SMS:     strings.TrimSpace(sms.String()),
	}, nil
}
