package poi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joonbang02/tripweaver/internal/geo"
	"github.com/joonbang02/tripweaver/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testBox() geo.BoundingBox {
	return geo.BoxAround(types.Coordinate{Latitude: 35.1796, Longitude: 129.0756}, 5)
}

func TestMirrorClient_QueryBox(t *testing.T) {
	ctx := context.Background()

	t.Run("parses elements from first healthy mirror", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"elements":[{"id":1,"type":"node","lat":35.18,"lon":129.07,"tags":{"name":"Temple","tourism":"attraction"}}]}`))
		}))
		defer srv.Close()

		client := NewMirrorClient([]string{srv.URL}, 0, time.Millisecond, time.Second, testLogger())
		elements, err := client.QueryBox(ctx, testBox())
		require.NoError(t, err)
		require.Len(t, elements, 1)
		assert.Equal(t, "Temple", elements[0].Tags["name"])
	})

	t.Run("retries then falls through to next mirror", func(t *testing.T) {
		var firstCalls atomic.Int32
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			firstCalls.Add(1)
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer bad.Close()
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"elements":[{"id":2,"type":"node","lat":35.18,"lon":129.07,"tags":{"name":"Park","leisure":"park"}}]}`))
		}))
		defer good.Close()

		client := NewMirrorClient([]string{bad.URL, good.URL}, 2, time.Millisecond, time.Second, testLogger())
		elements, err := client.QueryBox(ctx, testBox())
		require.NoError(t, err)
		assert.Len(t, elements, 1)
		assert.Equal(t, int32(3), firstCalls.Load()) // initial attempt + 2 retries
	})

	t.Run("malformed payload counts as mirror failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>rate limited</html>`))
		}))
		defer srv.Close()

		client := NewMirrorClient([]string{srv.URL}, 0, time.Millisecond, time.Second, testLogger())
		_, err := client.QueryBox(ctx, testBox())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all mirrors failed")
	})

	t.Run("context cancellation stops the retry loop", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		client := NewMirrorClient([]string{srv.URL}, 3, 10*time.Millisecond, time.Second, testLogger())
		_, err := client.QueryBox(cancelledCtx, testBox())
		require.Error(t, err)
	})
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery(testBox())
	assert.Contains(t, q, "[out:json]")
	assert.Contains(t, q, `node["tourism"~"attraction|museum|gallery|viewpoint"]["name"]`)
	assert.Contains(t, q, "out body;")
}
