package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/loveletters/internal/client/models"
	"github.com/dmitrijs2005/loveletters/internal/netx"
)

// HTTPClient is the Client implementation for the JSON API mounted at /api.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(serverURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("bad server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("bad server url %q: scheme must be http or https", serverURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(serverURL, "/") + "/api",
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	err := netx.DoJSON(ctx, c.http, method, c.baseURL+path, token, in, out)
	if err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	var se *netx.StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, se.Detail)
		case se.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, se.Detail)
		case se.StatusCode == http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrRejected, se.Detail)
		case se.StatusCode >= http.StatusBadGateway:
			return fmt.Errorf("%w: %s", ErrUnavailable, se.Error())
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.Token, error) {
	var t models.Token
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", models.Credentials{UserName: username, Password: password}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Token, error) {
	var t models.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", models.Credentials{UserName: username, Password: password}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Users(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) Send(ctx context.Context, token string, msg models.NewMessage) (*models.Message, error) {
	var m models.Message
	if err := c.do(ctx, http.MethodPost, "/messages", token, msg, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) list(ctx context.Context, token, folder string) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/"+folder, token, nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) Inbox(ctx context.Context, token string) ([]models.Message, error) {
	return c.list(ctx, token, "inbox")
}

func (c *HTTPClient) Sent(ctx context.Context, token string) ([]models.Message, error) {
	return c.list(ctx, token, "sent")
}

func (c *HTTPClient) Drafts(ctx context.Context, token string) ([]models.Message, error) {
	return c.list(ctx, token, "drafts")
}

func (c *HTTPClient) Message(ctx context.Context, token, id string) (*models.Message, error) {
	var m models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/"+url.PathEscape(id), token, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) Unlock(ctx context.Context, token, id, code string) error {
	return c.do(ctx, http.MethodPost, "/messages/"+url.PathEscape(id)+"/unlock", token, models.UnlockRequest{SecretCode: code}, nil)
}

func (c *HTTPClient) MarkRead(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodPost, "/messages/"+url.PathEscape(id)+"/read", token, nil, nil)
}

func (c *HTTPClient) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(id), token, nil, nil)
}
