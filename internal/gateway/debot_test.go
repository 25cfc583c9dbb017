package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-scope/internal/domain"
)

func TestDebot_FetchCreatorTrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/token/dev/info", r.URL.Path)
		assert.Equal(t, "solana", r.URL.Query().Get("chain"))
		assert.Equal(t, testMint, r.URL.Query().Get("token"))
		w.Write([]byte(`{"data":{
			"transactions":[
				{"op":"buy","from":"Pool","to":"Dev111","price":0.0000123,"volume":"150.5","amount":12000000,"time":1700000000},
				{"op":"trans_out","from":"Dev111","to":"Other","amount":5000,"time":"1700000100"},
				{"op":"mint","from":"x","to":"y"}
			],
			"position_clear": false,
			"position_increase": true,
			"position_decrease": false,
			"trans_out_amount": 5000
		}}`))
	}))
	defer server.Close()

	info, err := NewDebot(server.URL).FetchCreatorTrades(context.Background(), testMint)
	require.NoError(t, err)
	require.Len(t, info.Events, 3)

	assert.Equal(t, domain.TradeOpBuy, info.Events[0].Op)
	assert.Equal(t, 150.5, info.Events[0].Volume)
	assert.Equal(t, time.Unix(1700000000, 0), info.Events[0].Time)
	assert.Equal(t, domain.TradeOpTransferOut, info.Events[1].Op)
	assert.Equal(t, time.Unix(1700000100, 0), info.Events[1].Time)
	assert.Equal(t, domain.TradeOp("mint"), info.Events[2].Op)

	assert.True(t, info.PositionIncrease)
	assert.False(t, info.PositionClear)
	assert.Equal(t, 5000.0, info.TransferOut)
}

func TestDebot_FetchCreatorTrades_NoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	info, err := NewDebot(server.URL).FetchCreatorTrades(context.Background(), testMint)
	require.NoError(t, err)
	assert.Empty(t, info.Events)
}
