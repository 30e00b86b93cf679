package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bars-app/internal/core/domain/bars"
)

type fakeCache struct {
	data map[string][]byte
	err  error
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	d, ok := f.data[key]
	return d, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	f.data[key] = data
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestInstrumentedCache_CountsHitsAndMisses(t *testing.T) {
	ctx := context.Background()
	inner := &fakeCache{data: map[string][]byte{"place:p1": []byte("{}")}}
	c := NewInstrumentedCache(inner)

	hits, misses := testutil.ToFloat64(cacheHits), testutil.ToFloat64(cacheMisses)

	_, found, err := c.Get(ctx, "place:p1")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = c.Get(ctx, "place:p2")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, hits+1, testutil.ToFloat64(cacheHits))
	assert.Equal(t, misses+1, testutil.ToFloat64(cacheMisses))

	inner.err = errors.New("redis down")
	_, _, err = c.Get(ctx, "place:p1")
	assert.Error(t, err)
	assert.Equal(t, misses+1, testutil.ToFloat64(cacheMisses))
}

type fakeWorkflow struct {
	res bars.Result
	err error
}

func (f fakeWorkflow) Add(context.Context, bars.AddInput) (bars.Result, error) { return f.res, f.err }
func (f fakeWorkflow) Remove(context.Context, bars.RemoveInput) (bars.Result, error) {
	return f.res, f.err
}
func (f fakeWorkflow) State(string, string) bars.State { return f.res.State }

func TestInstrumentedWorkflow_RecordsOutcomes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		inner  fakeWorkflow
		remove bool
		labels []string
	}{
		{
			name:   "clean add",
			inner:  fakeWorkflow{res: bars.Result{State: bars.StateSuccess}},
			labels: []string{"add", "success", "none"},
		},
		{
			name:   "duplicate add",
			inner:  fakeWorkflow{res: bars.Result{State: bars.StateSuccess, Reason: bars.ErrAlreadyFavourited}},
			labels: []string{"add", "success", "already_favourited"},
		},
		{
			name:   "partial add",
			inner:  fakeWorkflow{res: bars.Result{State: bars.StateFailed}, err: bars.ErrPartialFailure},
			labels: []string{"add", "failed", "partial_failure"},
		},
		{
			name:   "guarded remove",
			inner:  fakeWorkflow{res: bars.Result{State: bars.StateFailed}, err: bars.ErrRemoveGuard},
			remove: true,
			labels: []string{"remove", "failed", "remove_guard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewInstrumentedWorkflow(tt.inner)
			counter := workflowOutcomes.WithLabelValues(tt.labels...)
			before := testutil.ToFloat64(counter)

			var err error
			if tt.remove {
				_, err = w.Remove(ctx, bars.RemoveInput{})
			} else {
				_, err = w.Add(ctx, bars.AddInput{})
			}

			assert.ErrorIs(t, err, tt.inner.err)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestMiddleware_PassesThrough(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestInitTracerProvider_NoEndpoint(t *testing.T) {
	shutdown, err := InitTracerProvider(context.Background(), "bars-service", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
