package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/loveletters/internal/common"
	"github.com/dmitrijs2005/loveletters/internal/logging"
	"github.com/dmitrijs2005/loveletters/internal/server/models"
	"github.com/dmitrijs2005/loveletters/internal/server/services"
	"github.com/gorilla/mux"
)

// UserService is the account side the handlers need.
type UserService interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	ListOthers(ctx context.Context, username string) ([]*models.User, error)
}

// MessageService is the message side the handlers need.
type MessageService interface {
	Send(ctx context.Context, actor string, in services.NewMessage) (*models.Message, error)
	Inbox(ctx context.Context, actor string) ([]*models.Message, error)
	Sent(ctx context.Context, actor string) ([]*models.Message, error)
	Drafts(ctx context.Context, actor string) ([]*models.Message, error)
	Get(ctx context.Context, actor, id string) (*models.Message, error)
	Unlock(ctx context.Context, actor, id, code string) error
	MarkRead(ctx context.Context, actor, id string) error
	Delete(ctx context.Context, actor, id string) error
}

const maxBodyBytes = 1 << 20

type handler struct {
	users    UserService
	messages MessageService
	logger   logging.Logger
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", common.ErrorValidation)
	}
	return nil
}

func required(field string, v *string) error {
	if v == nil {
		return fmt.Errorf("%w: %s is required", common.ErrorValidation, field)
	}
	return nil
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Message: "LoveLetters API is working!", Status: "healthy"})
}

// readCredentials decodes {"username", "password"}. Both fields must be
// present; the user service further rejects empty strings with 400.
func (h *handler) readCredentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	var req credentialsRequest
	err := decodeBody(w, r, &req)
	if err == nil {
		err = required("username", req.Username)
	}
	if err == nil {
		err = required("password", req.Password)
	}
	if err != nil {
		writeError(w, err)
		return "", "", false
	}
	return *req.Username, *req.Password, true
}

func (h *handler) writeToken(w http.ResponseWriter, res *services.AuthResult) {
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   common.TokenType,
		User:        toUserResponse(res.User),
	})
}

// register serves POST /api/auth/register. An empty username or password is
// a 400, as is a taken username.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	res, err := h.users.Register(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeToken(w, res)
}

// login serves POST /api/auth/login. Empty credentials are a 400 rather than
// a 401.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	res, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeToken(w, res)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(userFromContext(r.Context())))
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListOthers(r.Context(), userFromContext(r.Context()).UserName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserList(list))
}

// sendMessage serves POST /api/messages. recipient and content are required;
// an empty recipient is a 400, while empty content and secret_code are stored
// as given.
func (h *handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	err := decodeBody(w, r, &req)
	if err == nil {
		err = required("recipient", req.Recipient)
	}
	if err == nil {
		err = required("content", req.Content)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.messages.Send(r.Context(), userFromContext(r.Context()).UserName, services.NewMessage{
		Recipient:  *req.Recipient,
		Content:    *req.Content,
		SecretCode: req.SecretCode,
		IsDraft:    req.IsDraft,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMessageResponse(msg))
}

// listMessages serves one of the three folder views.
func (h *handler) listMessages(list func(context.Context, string) ([]*models.Message, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := list(r.Context(), userFromContext(r.Context()).UserName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMessageList(msgs))
	}
}

func (h *handler) getMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.messages.Get(r.Context(), userFromContext(r.Context()).UserName, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMessageResponse(msg))
}

func (h *handler) unlockMessage(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	err := decodeBody(w, r, &req)
	if err == nil {
		err = required("secret_code", req.SecretCode)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	err = h.messages.Unlock(r.Context(), userFromContext(r.Context()).UserName, mux.Vars(r)["id"], *req.SecretCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "Message unlocked successfully"})
}

func (h *handler) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.messages.MarkRead(r.Context(), userFromContext(r.Context()).UserName, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "Message marked as read"})
}

func (h *handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.messages.Delete(r.Context(), userFromContext(r.Context()).UserName, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "Message deleted successfully"})
}
