package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/config"
	"github.com/mamadbah2/supermarket/pkg/clients/whatsapp"
)

func TestNotify_PostsTextToManager(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/555/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer server.Close()

	client := whatsapp.NewClient(config.WhatsAppConfig{
		AccessToken:   "secret",
		PhoneNumberID: "555",
		BaseURL:       server.URL + "/",
		APIVersion:    "v21.0",
		ManagerID:     "221770000000",
	})

	id, err := client.Notify(context.Background(), "Sales summary")
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "221770000000", got["to"])
	assert.Equal(t, "text", got["type"])
	assert.Equal(t, "Sales summary", got["text"].(map[string]any)["body"])
}

func TestSendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer server.Close()

	client := whatsapp.NewClient(config.WhatsAppConfig{BaseURL: server.URL, APIVersion: "v21.0", PhoneNumberID: "555"})

	_, err := client.SendText(context.Background(), "1", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=100")
	assert.Contains(t, err.Error(), "Invalid parameter")
}

func TestNotify_WithoutRecipient(t *testing.T) {
	client := whatsapp.NewClient(config.WhatsAppConfig{BaseURL: "http://localhost", APIVersion: "v21.0"})
	_, err := client.Notify(context.Background(), "hi")
	assert.ErrorIs(t, err, whatsapp.ErrNoRecipient)
}
