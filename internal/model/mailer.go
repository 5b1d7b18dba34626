package model

import "context"

// Mailer delivers outbound email.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, username, link string) error
}
