package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCaptionFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/captions":
			w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:01.000\nhello\n"))
		default:
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("denied"))
		}
	}))
	defer server.Close()

	fetcher := NewHTTPCaptionFetcher(0)

	resp, err := fetcher.Fetch(context.Background(), server.URL+"/captions")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Body, "hello")

	resp, err = fetcher.Fetch(context.Background(), server.URL+"/other")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHTTPCaptionFetcher_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPCaptionFetcher(0).Fetch(context.Background(), url)
	assert.Error(t, err)
}
