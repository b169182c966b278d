package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("sends body and token, decodes reply", func(t *testing.T) {
		var gotMethod, gotCT, gotAuth, gotBody string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"pong"}`))
		}))
		defer ts.Close()

		var out payload
		err := DoJSON(context.Background(), ts.Client(), http.MethodPost, ts.URL, "tok", payload{Name: "ping"}, &out)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "application/json", gotCT)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.JSONEq(t, `{"name":"ping"}`, gotBody)
		assert.Equal(t, "pong", out.Name)
	})

	t.Run("no body and no token", func(t *testing.T) {
		var gotCT, gotAuth string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		require.NoError(t, DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, "", nil, nil))
		assert.Empty(t, gotCT)
		assert.Empty(t, gotAuth)
	})

	t.Run("error status carries detail", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Message not found"}`))
		}))
		defer ts.Close()

		err := DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, "", nil, nil)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.Equal(t, "Message not found", se.Detail)
		assert.Contains(t, err.Error(), "404 Message not found")
	})

	t.Run("error status without json body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer ts.Close()

		err := DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, "", nil, nil)

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Empty(t, se.Detail)
		assert.Contains(t, err.Error(), "Bad Gateway")
	})

	t.Run("undecodable reply", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer ts.Close()

		var out payload
		err := DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, "", nil, &out)
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := DoJSON(context.Background(), http.DefaultClient, http.MethodGet, ts.URL, "", nil, nil)
		require.Error(t, err)

		var se *StatusError
		assert.False(t, errors.As(err, &se))
	})
}
