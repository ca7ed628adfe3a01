package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/infrastructure/mailer"
)

func TestBrevoClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("api-key"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		sender := payload["sender"].(map[string]interface{})
		assert.Equal(t, "MORO", sender["name"])
		assert.Equal(t, "no-reply@moro.app", sender["email"])
		to := payload["to"].([]interface{})
		require.Len(t, to, 1)
		assert.Equal(t, "amina@example.com", to[0].(map[string]interface{})["email"])
		assert.Equal(t, "Your financing application", payload["subject"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"<202608310000.123@smtp-relay>"}`))
	}))
	defer server.Close()

	client := mailer.NewBrevoClient("test-api-key", server.URL, "MORO", "no-reply@moro.app")

	err := client.Send(context.Background(), port.Email{
		To:      "amina@example.com",
		Subject: "Your financing application",
		Body:    "Your application has been approved.",
	})

	require.NoError(t, err)
}

func TestBrevoClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer server.Close()

	client := mailer.NewBrevoClient("bad-key", server.URL, "MORO", "no-reply@moro.app")

	err := client.Send(context.Background(), port.Email{
		To:      "amina@example.com",
		Subject: "Your financing application",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailer API error (status 401)")
}
