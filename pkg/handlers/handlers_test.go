package handlers_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/agent-lab-client/pkg/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"id": "p1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"p1"}`, w.Body.String())
}

func TestRespondRaw(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want string
	}{
		{"passes bytes through", []byte(`{"a": 1}`), `{"a": 1}`},
		{"empty becomes null", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondRaw(w, http.StatusOK, tt.body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRespondError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	w := httptest.NewRecorder()
	handlers.RespondError(w, logger, http.StatusBadGateway, errors.New("upstream down"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"upstream down"}`, w.Body.String())
	assert.Contains(t, logs.String(), "status=502")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ollama"}`))
	require.NoError(t, handlers.DecodeJSON(r, &v))
	assert.Equal(t, "ollama", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, handlers.DecodeJSON(r, &v))
}

func TestReadBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"x":1}`))
	data, err := handlers.ReadBody(r)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))

	big := strings.Repeat("a", handlers.MaxBodyBytes+10)
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	data, err = handlers.ReadBody(r)
	require.NoError(t, err)
	assert.Len(t, data, handlers.MaxBodyBytes)
}
