package ports

import "context"

// Mailer puerto de envío de emails transaccionales.
type Mailer interface {
	SendEmailVerification(ctx context.Context, to, name, token string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
}
