package email_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"beauty-solutions-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestWeb3FormsClient_Send(t *testing.T) {
	payload := email.Payload{
		"access_key": "key-123",
		"subject":    "New Contact from Jane - Beauty Solutions Website",
		"name":       "Jane",
		"email":      "jane@x.com",
		"message":    "Hi",
	}

	t.Run("Should post JSON with JSON headers and report delivered", func(t *testing.T) {
		var got map[string]string
		srv, calls := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
		})

		out := email.NewWeb3FormsClient(srv.URL, time.Second).Send(context.Background(), payload)

		assert.Equal(t, email.StatusDelivered, out.Status)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		assert.Equal(t, map[string]string(payload), got)
	})

	t.Run("Should carry the provider message on rejection", func(t *testing.T) {
		srv, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"X"}`))
		})

		out := email.NewWeb3FormsClient(srv.URL, time.Second).Send(context.Background(), payload)

		assert.Equal(t, email.StatusRejected, out.Status)
		assert.Equal(t, "X", out.Message)
	})

	t.Run("Should use the default message when the provider gives none", func(t *testing.T) {
		srv, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		})

		out := email.NewWeb3FormsClient(srv.URL, time.Second).Send(context.Background(), payload)

		assert.Equal(t, email.StatusRejected, out.Status)
		assert.Equal(t, email.DefaultFailureMessage, out.Message)
	})

	t.Run("Should treat a non-JSON body as a transport error", func(t *testing.T) {
		srv, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>bad gateway</html>`))
		})

		out := email.NewWeb3FormsClient(srv.URL, time.Second).Send(context.Background(), payload)

		assert.Equal(t, email.StatusTransportError, out.Status)
		assert.Equal(t, email.DefaultFailureMessage, out.Message)
		assert.Error(t, out.Err)
	})

	t.Run("Should time out once and not retry", func(t *testing.T) {
		srv, calls := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		out := email.NewWeb3FormsClient(srv.URL, 50*time.Millisecond).Send(context.Background(), payload)

		assert.Equal(t, email.StatusTransportError, out.Status)
		assert.Equal(t, email.DefaultFailureMessage, out.Message)
		assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	})

	t.Run("Should report unreachable provider as transport error", func(t *testing.T) {
		srv, _ := newProvider(t, func(w http.ResponseWriter, r *http.Request) {})
		url := srv.URL
		srv.Close()

		out := email.NewWeb3FormsClient(url, time.Second).Send(context.Background(), payload)

		assert.Equal(t, email.StatusTransportError, out.Status)
	})
}
