package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Notification is a rendered contact email for providers that send real mail
type Notification struct {
	Subject string
	ReplyTo string
	HTML    string
	Text    string
}

type notificationField struct {
	Label string
	Value string
}

type notificationData struct {
	SenderName  string
	SenderEmail string
	Fields      []notificationField
	Message     string
	SiteName    string
}

// notificationTemplate is the HTML body sent to the company inbox
var notificationTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #e11d48; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #e11d48; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.SenderName}} ({{.SenderEmail}})</div>
            </div>
            {{range .Fields}}<div class="field">
                <div class="label">{{.Label}}:</div>
                <div>{{.Value}}</div>
            </div>
            {{end}}<div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the {{.SiteName}} contact form.</p>
            <p>To reply, send an email to: {{.SenderEmail}}</p>
        </div>
    </div>
</body>
</html>`))

// optionalFields lists the payload keys shown between sender and message
var optionalFields = []struct{ key, label string }{
	{"company", "Company"},
	{"country", "Country"},
	{"phone", "Phone"},
	{"interest", "Interest"},
	{"services", "Services"},
}

// RenderNotification turns a relay payload into an email for the company inbox
func RenderNotification(payload Payload, siteName string) (Notification, error) {
	data := notificationData{
		SenderName:  payload["name"],
		SenderEmail: payload["email"],
		Message:     payload["message"],
		SiteName:    siteName,
	}
	for _, f := range optionalFields {
		if v := payload[f.key]; v != "" {
			data.Fields = append(data.Fields, notificationField{Label: f.label, Value: v})
		}
	}

	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, data); err != nil {
		return Notification{}, fmt.Errorf("failed to execute email template: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "From: %s (%s)\n", data.SenderName, data.SenderEmail)
	for _, f := range data.Fields {
		fmt.Fprintf(&text, "%s: %s\n", f.Label, f.Value)
	}
	fmt.Fprintf(&text, "\nMessage:\n%s\n", data.Message)

	subject := payload["subject"]
	if subject == "" {
		subject = "New Contact from " + data.SenderName
	}

	replyTo := payload["replyto"]
	if replyTo == "" {
		replyTo = data.SenderEmail
	}

	return Notification{
		Subject: subject,
		ReplyTo: replyTo,
		HTML:    body.String(),
		Text:    text.String(),
	}, nil
}
