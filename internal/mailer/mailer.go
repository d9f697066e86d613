// Package mailer delivers templated notification mail. The booking flow only
// ever sends the ticket confirmation, and only when the guest left an address
// at checkout.
package mailer

// Mailer resolves templateFile against the implementation's template set and
// sends the rendered message. Send blocks; callers decide whether to run it
// off the request path.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}
