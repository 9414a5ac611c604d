package predictions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `[
  {"lat": 45.5, "lon": -2.1, "prediction_score": 0.82, "details": {"Température": "19.4°C", "Vent": "12 noeuds"}},
  {"lat": 44.9, "lon": -3.0, "prediction_score": 0.17, "details": {"Température": "17.0°C", "Vent": "20 noeuds"}}
]`

func TestFetchDecodesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	items, err := New(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.InDelta(t, 0.82, items[0].Score, 1e-9)
	assert.Equal(t, "12 noeuds", items[0].Details["Vent"])
}

func TestFetchFailsOnStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestTriggerForwardsToSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	var got []Prediction
	trigger := NewTrigger(New(srv.URL, nil), func(items []Prediction) { got = items }, nil)

	require.NoError(t, trigger.Load(context.Background()))
	assert.Len(t, got, 2)
}

func TestTriggerPropagatesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	called := false
	trigger := NewTrigger(New(srv.URL, nil), func([]Prediction) { called = true }, nil)

	require.ErrorIs(t, trigger.Load(context.Background()), ErrFetchFailed)
	assert.False(t, called)
}
