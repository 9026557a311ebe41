package metar

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Options{
		BaseURL: server.URL,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestMetarAvailable(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{"non-empty array", `[{"metar_id":1}]`, true},
		{"empty array", `[]`, false},
		{"non-empty object", `{"LFPG":{}}`, true},
		{"empty object", `{}`, false},
		{"scalar", `"nope"`, false},
		{"null", `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.response))
			})

			got, err := client.MetarAvailable(context.Background(), "LFPG")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetarAvailable_QueryParams(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	_, err := client.MetarAvailable(context.Background(), "EGLL")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "ids=EGLL")
	assert.Contains(t, gotQuery, "format=json")
}

func TestMetarAvailable_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.MetarAvailable(context.Background(), "LFPG")
	assert.Error(t, err)
}

func TestMetarAvailable_MalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{`))
	})

	_, err := client.MetarAvailable(context.Background(), "LFPG")
	assert.Error(t, err)
}
