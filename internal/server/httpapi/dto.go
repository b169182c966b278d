package httpapi

import (
	"time"

	"github.com/dmitrijs2005/loveletters/internal/server/models"
)

type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type sendRequest struct {
	Recipient  *string `json:"recipient"`
	Content    *string `json:"content"`
	SecretCode *string `json:"secret_code"`
	IsDraft    bool    `json:"is_draft"`
}

type unlockRequest struct {
	SecretCode *string `json:"secret_code"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"created_at"`
	LastSeen  *time.Time `json:"last_seen"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type messageResponse struct {
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

type statusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.UserName,
		CreatedAt: u.CreatedAt,
		LastSeen:  u.LastSeen,
	}
}

func toUserList(list []*models.User) []userResponse {
	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toMessageResponse(m *models.Message) messageResponse {
	return messageResponse{
		ID:         m.ID,
		Sender:     m.Sender,
		Recipient:  m.Recipient,
		Content:    m.Content,
		SecretCode: m.SecretCode,
		CreatedAt:  m.CreatedAt,
		ReadAt:     m.ReadAt,
		IsDraft:    m.IsDraft,
		IsDeleted:  m.IsDeleted,
	}
}

func toMessageList(list []*models.Message) []messageResponse {
	out := make([]messageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageResponse(m))
	}
	return out
}
