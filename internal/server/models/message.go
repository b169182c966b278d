package models

import "time"

// Message is a letter from Sender to Recipient (both usernames).
//
// A message with a non-nil SecretCode is locked: the recipient confirms it
// with the code, which stamps ReadAt. Messages are never removed, only
// soft-deleted through IsDeleted.
type Message struct {
	ID         string
	Sender     string
	Recipient  string
	Content    string
	SecretCode *string
	CreatedAt  time.Time
	ReadAt     *time.Time
	IsDraft    bool
	IsDeleted  bool
}

// IsLocked reports whether the message carries a secret code.
func (m *Message) IsLocked() bool {
	return m.SecretCode != nil
}

// HasParticipant reports whether username sent or received the message.
func (m *Message) HasParticipant(username string) bool {
	return m.Sender == username || m.Recipient == username
}
