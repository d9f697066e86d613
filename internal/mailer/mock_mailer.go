package mailer

import "sync"

// SentEmail captures one Send call.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records outgoing mail instead of dialing SMTP. It is safe for
// concurrent use: ticket confirmations arrive from the checkout timer
// goroutine while tests read from their own.
type MockMailer struct {
	mu     sync.RWMutex
	emails []SentEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = append(m.emails, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// GetSentEmails returns a copy of everything recorded so far.
func (m *MockMailer) GetSentEmails() []SentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	emails := make([]SentEmail, len(m.emails))
	copy(emails, m.emails)

	return emails
}

// Reset clears the record between tests.
func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.emails = nil
}
