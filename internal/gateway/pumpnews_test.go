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

const pumpNewsStatsBody = `[{"result":{"data":{"json":{"data":{"data":[{
	"stats":{"filter_tweets":12,"followers":"34000","likes":560,"views":78000,"official_tweets":3},
	"smartbuy":4,
	"analysis":{"lang-zh-CN":{"summary":"社区活跃"}}
}]}}}}}]`

const pumpNewsTweetsBody = `[{"result":{"data":{"json":{"data":{"data":{"tweets":[{
	"tweet_id":"1777",
	"text":"gm",
	"user":{"name":"Alice","screen_name":"alice","is_blue_verified":true,"followers_count":900},
	"created_at":"1700000000",
	"retweet_count":2,
	"favorite_count":"15",
	"views":300,
	"medias":[{"image_url":"https://img/1.png"}]
}]}}}}}}]`

func newPumpNewsServer(t *testing.T, statsStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/trpc/analyze.getBatchTokenDataByTokenAddress":
			assert.Contains(t, r.URL.Query().Get("input"), testMint)
			w.WriteHeader(statsStatus)
			w.Write([]byte(pumpNewsStatsBody))
		case "/api/trpc/tweets.getTweetsByTokenAddress":
			assert.Contains(t, r.URL.Query().Get("input"), `"category":"top"`)
			w.Write([]byte(pumpNewsTweetsBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestPumpNews_FetchSocial(t *testing.T) {
	server := newPumpNewsServer(t, http.StatusOK)
	defer server.Close()

	social, err := NewPumpNews(server.URL).FetchSocial(context.Background(), testMint)
	require.NoError(t, err)

	assert.Equal(t, int64(12), social.Stats.FilterTweets)
	assert.Equal(t, int64(34000), social.Stats.Followers)
	assert.Equal(t, int64(4), social.Stats.SmartBuy)
	assert.Equal(t, "社区活跃", social.Stats.Summary)

	require.Len(t, social.Tweets, 1)
	tw := social.Tweets[0]
	assert.Equal(t, "alice", tw.UserScreenName)
	assert.True(t, tw.Verified)
	assert.Equal(t, int64(15), tw.Likes)
	assert.Equal(t, time.Unix(1700000000, 0), tw.CreatedAt)
	assert.Equal(t, "https://img/1.png", tw.ImageURL)
	assert.Equal(t, "https://twitter.com/alice/status/1777", tw.URL())
}

func TestPumpNews_StatsFailureFailsFetch(t *testing.T) {
	server := newPumpNewsServer(t, http.StatusInternalServerError)
	defer server.Close()

	_, err := NewPumpNews(server.URL).FetchSocial(context.Background(), testMint)
	assert.ErrorIs(t, err, ErrHTTPStatus)
}
