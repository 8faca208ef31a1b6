package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"msg-42","status":"queued"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key-1", "TOURDESK")
	ref, err := c.Send(context.Background(), "", "+62811", "hello")
	require.NoError(t, err)
	assert.Equal(t, "msg-42", ref)
	assert.Equal(t, sendRequest{To: "+62811", From: "TOURDESK", Message: "hello"}, got)
}

func TestClientSendGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"invalid number"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "", "").Send(context.Background(), "BALI", "x", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422: invalid number")
}

func TestClientSendWithoutURL(t *testing.T) {
	_, err := New("", "k", "").Send(context.Background(), "", "0811", "hi")
	assert.Error(t, err)
}
