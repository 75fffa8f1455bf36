package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/boxoffice/internal/ratings"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLogRequests_RecordsStatus(t *testing.T) {
	handler := logRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}), slog.New(slog.NewTextHandler(io.Discard, nil)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestOpenRatingDB(t *testing.T) {
	ctx := context.Background()
	db, err := openRatingDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := ratings.NewStore(db)
	require.NoError(t, store.Put(ctx, "k", &ratings.Rating{Title: "Arrival"}))
	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "Arrival", got.Title)
}
