package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"visor/internal/media"
	"visor/internal/pkg/logger"
)

func TestChainedConfigurationMutatesInPlace(t *testing.T) {
	c := New("http://localhost:9001", "key")

	returned := c.Configure(DefaultConfig()).
		UseLegacyProtocol().
		SelectModel("coins/3", InstanceSegmentation)

	assert.Same(t, c, returned)
	assert.Equal(t, ModeLegacy, c.mode)
	assert.Equal(t, "coins/3", c.modelID)
	assert.Equal(t, InstanceSegmentation, c.category)
}

func TestProtocolSwitchAffectsNextCallOnly(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)

	_, err := c.Infer(context.Background(), []media.Input{media.Bytes("a")}, nil)
	require.NoError(t, err)

	c.UseLegacyProtocol()
	_, err = c.Infer(context.Background(), []media.Input{media.Bytes("b")}, nil)
	require.NoError(t, err)

	c.UseNewProtocol()
	_, err = c.Infer(context.Background(), []media.Input{media.Bytes("c")}, nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"/infer/object_detection", "/coins/3", "/infer/object_detection"}, paths)
}

func TestTrailingSlashInServerURLIsTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/info", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "x", "version": "1"}`))
	}))
	defer server.Close()

	_, err := New(server.URL+"/", "key").ServerInfo(context.Background())
	require.NoError(t, err)
}

func TestWithHTTPClientIsUsed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, "key", WithHTTPClient(&http.Client{Timeout: time.Millisecond}))
	_, err := c.ServerInfo(context.Background())

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
}

func TestCallsAreLoggedWithRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	core, logs := observer.New(zap.DebugLevel)
	c := New(server.URL, "key",
		WithLogger(logger.Wrap(zap.New(core))),
	).SelectModel("coins/3", ObjectDetection)

	_, err := c.Infer(context.Background(), []media.Input{media.Bytes("img")}, nil)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "new", fields["protocol"])
	assert.NotEmpty(t, fields["request_id"])
}
