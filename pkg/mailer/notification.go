package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
	"time"
)

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// AccountNotice is what an operator notification says about an account change.
type AccountNotice struct {
	AppName    string
	Action     string // "registered", "deleted"
	UserID     int64
	Username   string
	FirstName  string
	LastName   string
	OccurredAt time.Time
}

const noticeText = `{{.AppName}}: account {{.Action}}

User:     {{.Username}} (id {{.UserID}})
Name:     {{.FirstName}} {{.LastName}}
When:     {{.When}}
`

const noticeHTML = `<!doctype html>
<html><body style="font-family:sans-serif">
<h2>{{.AppName}}: account {{.Action}}</h2>
<table>
<tr><td>User</td><td><b>{{.Username}}</b> (id {{.UserID}})</td></tr>
<tr><td>Name</td><td>{{.FirstName}} {{.LastName}}</td></tr>
<tr><td>When</td><td>{{.When}}</td></tr>
</table>
</body></html>
`

var (
	noticeTextTpl = texttpl.Must(texttpl.New("notice_text").Parse(noticeText))
	noticeHTMLTpl = htmpl.Must(htmpl.New("notice_html").Parse(noticeHTML))
)

type noticeView struct {
	AccountNotice
	When string
}

// RenderAccountNotice renders the subject and both bodies for n.
func RenderAccountNotice(n AccountNotice) (Message, error) {
	if n.AppName == "" {
		n.AppName = "accounts"
	}
	view := noticeView{AccountNotice: n, When: n.OccurredAt.UTC().Format(time.RFC1123)}

	var text, html bytes.Buffer
	if err := noticeTextTpl.Execute(&text, view); err != nil {
		return Message{}, fmt.Errorf("render text: %w", err)
	}
	if err := noticeHTMLTpl.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("render html: %w", err)
	}
	return Message{
		Subject: fmt.Sprintf("[%s] account %s: %s", n.AppName, n.Action, n.Username),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
