package mailer

import (
	"context"
	"sync"
)

// Message is a mail captured by MemoryMailer.
type Message struct {
	To      string
	Subject string
	Body    string
}

// MemoryMailer records messages instead of sending them. Used in tests.
type MemoryMailer struct {
	mu       sync.Mutex
	Messages []Message
	Err      error // returned by Send when set
}

func NewMemoryMailer() *MemoryMailer {
	return &MemoryMailer{}
}

func (m *MemoryMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, Message{To: to, Subject: subject, Body: body})
	return nil
}
