// Package mailer delivers outbound email.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`From: {{.From}}
To: {{.To}}
Subject: Confirm your email

Hi {{.Username}},

please confirm your email by following the link below:

{{.Link}}
`))

type confirmation struct {
	From     string
	To       string
	Username string
	Link     string
}

var _ model.Mailer = (*LogMailer)(nil)

// LogMailer renders messages and writes them to the log instead of
// delivering them.
type LogMailer struct {
	from   string
	logger *logger.Logger
}

func NewLogMailer(from string, logger *logger.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

func (m *LogMailer) SendConfirmation(ctx context.Context, email, username, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, confirmation{
		From:     m.from,
		To:       email,
		Username: username,
		Link:     link,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	m.logger.Info("Mailer: confirmation email",
		"to", email,
		"message", buf.String())

	return nil
}
