package client

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"visor/internal/media"
)

func echoInferenceServer(calls *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"echo": "` + gjson.GetBytes(body, "image.value").String() + `"}`))
	}))
}

func TestStreamYieldsOnePairPerFrameInOrder(t *testing.T) {
	var calls atomic.Int64
	server := echoInferenceServer(&calls)
	defer server.Close()

	frames := [][]byte{{1}, {2}, {3}, {4}}
	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)
	stream := c.InferStream(media.NewSliceSource(frames...), nil)

	ctx := context.Background()
	var pairs []Pair
	for {
		pair, ok, err := stream.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		pairs = append(pairs, pair)
	}

	require.Len(t, pairs, len(frames))
	for i, pair := range pairs {
		assert.Equal(t, i, pair.Frame.Index)
		assert.Equal(t, frames[i], pair.Frame.Data)
		assert.Equal(t, base64.StdEncoding.EncodeToString(frames[i]), pair.Result.Get("echo").String())
	}
	assert.Equal(t, int64(len(frames)), calls.Load())
}

func TestStreamIsLazy(t *testing.T) {
	var calls atomic.Int64
	server := echoInferenceServer(&calls)
	defer server.Close()

	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)
	stream := c.InferStream(media.NewSliceSource([]byte{1}, []byte{2}), nil)
	assert.Zero(t, calls.Load(), "creating a stream must not issue requests")

	_, ok, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), calls.Load(), "only the consumed frame may have been inferred")
}

func TestStreamIsExhaustedAfterSource(t *testing.T) {
	var calls atomic.Int64
	server := echoInferenceServer(&calls)
	defer server.Close()

	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)
	stream := c.InferStream(media.NewSliceSource([]byte{1}), nil)

	ctx := context.Background()
	_, ok, err := stream.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	for range 3 {
		_, ok, err = stream.Next(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, int64(1), calls.Load())
}

func TestStreamSnapshotsSessionConfiguration(t *testing.T) {
	var calls atomic.Int64
	server := echoInferenceServer(&calls)
	defer server.Close()

	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)
	stream := c.InferStream(media.NewSliceSource([]byte{1}), nil)

	// Reconfiguring the client after stream creation must not affect the
	// already-created stream.
	c.SelectModel("", ObjectDetection)

	_, ok, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStreamStopsAfterError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "malformed image"}`))
	}))
	defer server.Close()

	c := New(server.URL, "key").SelectModel("coins/3", ObjectDetection)
	stream := c.InferStream(media.NewSliceSource([]byte{1}, []byte{2}), nil)

	ctx := context.Background()
	_, ok, err := stream.Next(ctx)
	require.Error(t, err)
	assert.False(t, ok)

	var remoteErr *RemoteCallError
	require.ErrorAs(t, err, &remoteErr)

	_, ok, err = stream.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a failed stream stays exhausted")
}
