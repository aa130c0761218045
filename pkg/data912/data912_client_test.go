package data912

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient()
	client.BaseUrl = server.URL
	return client, server
}

func TestPrices(t *testing.T) {
	t.Run("close wins over ask and bid", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/live/arg_bonds", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"symbol": "AL30", "px_bid": 95.0, "px_ask": 96.0, "c": 95.5},
				{"symbol": "GD35", "px_bid": 60.0, "px_ask": 61.0, "c": 0},
				{"symbol": "BIDONLY", "px_bid": 40.0, "px_ask": 0, "c": 0},
				{"symbol": "NOQUOTE", "px_bid": 0, "px_ask": 0, "c": 0}
			]`))
		})
		mux.HandleFunc("/live/arg_notes", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"symbol": "S30A6", "px_bid": 0, "px_ask": 0, "c": 101.2}]`))
		})

		client, server := newTestClient(mux)
		defer server.Close()

		prices, err := client.Prices(context.Background())
		require.NoError(t, err)

		require.Len(t, prices, 4)
		require.Equal(t, "95.5", prices["AL30"].String())
		require.Equal(t, "61", prices["GD35"].String())
		require.Equal(t, "40", prices["BIDONLY"].String())
		require.Equal(t, "101.2", prices["S30A6"].String())
		require.NotContains(t, prices, "NOQUOTE")
	})

	t.Run("non-200 response", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}))
		defer server.Close()

		_, err := client.Prices(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "500")
	})
}

func TestMEPRate(t *testing.T) {
	t.Run("odd count takes middle close", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/live/mep", r.URL.Path)
			w.Write([]byte(`[{"close": 1210}, {"close": 1190}, {"close": 1250}]`))
		}))
		defer server.Close()

		rate, err := client.MEPRate(context.Background())
		require.NoError(t, err)
		require.Equal(t, "1210", rate.String())
	})

	t.Run("even count averages middle pair", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"close": 1200}, {"close": 1300}, {"close": 1100}, {"close": 1400}]`))
		}))
		defer server.Close()

		rate, err := client.MEPRate(context.Background())
		require.NoError(t, err)
		require.Equal(t, "1250", rate.String())
	})

	t.Run("zero closes are ignored", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"close": 0}, {"close": 1205}]`))
		}))
		defer server.Close()

		rate, err := client.MEPRate(context.Background())
		require.NoError(t, err)
		require.Equal(t, "1205", rate.String())
	})

	t.Run("empty feed", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := client.MEPRate(context.Background())
		require.Error(t, err)
	})
}
