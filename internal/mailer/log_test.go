package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/logger"
)

func TestLogMailer_SendConfirmation(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer("noreply@contacts.local", logger.NewWithWriter(&buf, 0))

	err := m.SendConfirmation(context.Background(), "deadpool@example.com", "deadpool", "http://localhost:8080/api/auth/confirmed_email/tok")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Mailer: confirmation email")
	assert.Contains(t, out, "to=deadpool@example.com")
	assert.Contains(t, out, "Hi deadpool")
	assert.Contains(t, out, "confirmed_email/tok")
	assert.Contains(t, out, "noreply@contacts.local")
}

func TestLogMailer_CanceledContext(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer("noreply@contacts.local", logger.NewWithWriter(&buf, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendConfirmation(ctx, "deadpool@example.com", "deadpool", "link")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}
