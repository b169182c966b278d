package models

import "time"

type Message struct {
	ID         string     `json:"id"`
	Sender     string     `json:"sender"`
	Recipient  string     `json:"recipient"`
	Content    string     `json:"content"`
	SecretCode *string    `json:"secret_code"`
	CreatedAt  time.Time  `json:"created_at"`
	ReadAt     *time.Time `json:"read_at"`
	IsDraft    bool       `json:"is_draft"`
	IsDeleted  bool       `json:"is_deleted"`
}

// IsLocked reports whether the message carries a non-empty secret code.
func (m *Message) IsLocked() bool {
	return m.SecretCode != nil && *m.SecretCode != ""
}

// NeedsCode reports whether user has to enter the code before reading m.
func (m *Message) NeedsCode(user string) bool {
	return m.IsLocked() && m.ReadAt == nil && m.Recipient == user
}

// OpensOnView reports whether showing m to user should mark it as read.
func (m *Message) OpensOnView(user string) bool {
	return !m.IsLocked() && m.ReadAt == nil && m.Recipient == user
}

type NewMessage struct {
	Recipient  string  `json:"recipient"`
	Content    string  `json:"content"`
	SecretCode *string `json:"secret_code"`
	IsDraft    bool    `json:"is_draft"`
}

type UnlockRequest struct {
	SecretCode string `json:"secret_code"`
}
