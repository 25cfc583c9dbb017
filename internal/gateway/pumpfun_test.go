package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMint = "9DHe3pycTuymFk4H4bbPoAJ4hQrr2kaLDF6J6aAKpump"

func TestPumpFun_LookupToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/search", r.URL.Path)
		assert.Equal(t, testMint, r.URL.Query().Get("searchTerm"))
		assert.Equal(t, "exact", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"mint": "` + testMint + `",
			"name": "Scope",
			"symbol": "SCP",
			"creator": "Dev111",
			"created_timestamp": 1700000000000,
			"image_uri": "https://img/x.png",
			"twitter": "https://x.com/scope",
			"usd_market_cap": "1500000.5",
			"complete": true
		}, {"mint": "other"}]`))
	}))
	defer server.Close()

	p := NewPumpFun(server.URL, 0)
	profile, err := p.LookupToken(context.Background(), testMint)
	require.NoError(t, err)

	assert.Equal(t, testMint, profile.Mint)
	assert.Equal(t, "SCP", profile.Symbol)
	assert.Equal(t, "Dev111", profile.Creator)
	assert.True(t, profile.HasCreator())
	assert.Equal(t, time.UnixMilli(1700000000000), profile.CreatedAt)
	assert.Equal(t, 1500000.5, profile.MarketCapUSD)
	assert.True(t, profile.Complete)
	assert.Equal(t, DefaultHistoryLimit, p.HistoryLimit())
}

func TestPumpFun_LookupToken_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, err := NewPumpFun(server.URL, 10).LookupToken(context.Background(), testMint)
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, KindEmptyResult, KindOf(err))
}

func TestPumpFun_FetchCreatorHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/user-created-coins/Dev111", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"mint":"m1","symbol":"A","complete":false,"usd_market_cap":2500,"created_timestamp":1700000000000},
			{"mint":"m2","symbol":"B","complete":true,"usd_market_cap":null}
		]`))
	}))
	defer server.Close()

	entries, err := NewPumpFun(server.URL, 5).FetchCreatorHistory(context.Background(), "Dev111")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "A", entries[0].Symbol)
	assert.Equal(t, 2500.0, entries[0].MarketCapUSD)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.True(t, entries[1].Complete)
	assert.Zero(t, entries[1].MarketCapUSD)
	assert.True(t, entries[1].CreatedAt.IsZero())
}

func TestPumpFun_FetchCreatorHistory_Null(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	entries, err := NewPumpFun(server.URL, 5).FetchCreatorHistory(context.Background(), "Dev111")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
