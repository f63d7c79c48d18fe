package interfaces

// Notifier delivers a password reset link to a user. A returned error means
// the message did not reach the delivery pipeline; the token stays persisted
// either way.
type Notifier interface {
	SendPasswordReset(to, name, link string) error
}
