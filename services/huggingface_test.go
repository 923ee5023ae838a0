package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goginie/models"
)

func TestHuggingFaceGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mistralai/test-model", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))

		var body hfRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, strings.HasPrefix(body.Inputs, "[INST] "))
		assert.Contains(t, body.Inputs, "plan Goa")
		assert.Equal(t, 0.4, body.Parameters.Temperature)
		assert.False(t, body.Parameters.ReturnFullText)

		w.Write([]byte(`[{"generated_text":"{\"itinerary\":[]}"}]`))
	}))
	defer srv.Close()

	g, err := NewHuggingFaceGenerator("hf-key", "mistralai/test-model")
	require.NoError(t, err)
	g.baseURL = srv.URL

	text, err := g.Generate(context.Background(), "plan Goa", 0.4)
	require.NoError(t, err)
	assert.Equal(t, `{"itinerary":[]}`, text)
	assert.Equal(t, "huggingface:mistralai/test-model", g.Name())
}

func TestHuggingFaceGenerator_Errors(t *testing.T) {
	_, err := NewHuggingFaceGenerator("", "")
	assert.True(t, errors.Is(err, models.ErrMissingConfiguration))

	for _, tc := range []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusServiceUnavailable, `{"error":"loading"}`, func(t *testing.T, err error) { assert.ErrorContains(t, err, "503") }},
		{http.StatusOK, `[]`, func(t *testing.T, err error) { assert.ErrorIs(t, err, models.ErrMalformedResponse) }},
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(tc.body))
		}))

		g, err := NewHuggingFaceGenerator("hf-key", "")
		require.NoError(t, err)
		g.baseURL = srv.URL

		_, err = g.Generate(context.Background(), "plan", 0.7)
		tc.check(t, err)
		srv.Close()
	}
}
