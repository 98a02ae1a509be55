package scraperwiki

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buffer bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buffer, nil)))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})
	return &buffer
}

func TestAnnounce(t *testing.T) {
	logs := captureLogs(t)

	var executed []Request
	expected := &resty.Response{}
	res, err := announce(context.Background(), Request{
		Announce: "Pushing new scraper...",
		Done:     "Scraper saved.",
		Path:     "/handle_editor_save/",
	}, func(_ context.Context, req Request) (*resty.Response, error) {
		executed = append(executed, req)
		return expected, nil
	})

	require.NoError(t, err)
	require.Same(t, expected, res)
	require.Len(t, executed, 1)
	require.Equal(t, "/handle_editor_save/", executed[0].Path)
	require.Contains(t, logs.String(), "Pushing new scraper...")
	require.Contains(t, logs.String(), "Scraper saved.")
}

func TestAnnounceFailure(t *testing.T) {
	logs := captureLogs(t)

	boom := errors.New("connection reset")
	_, err := announce(context.Background(), Request{
		Announce: "Authenticating...",
		Done:     "Authenticated.",
	}, func(context.Context, Request) (*resty.Response, error) {
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	require.Contains(t, logs.String(), "Authenticating...")
	require.NotContains(t, logs.String(), "Authenticated.")
}
