package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"solana-token-scope/internal/domain"
)

// PumpNews is the social-stats provider.
type PumpNews struct {
	http *httpClient
}

// NewPumpNews creates a pump.news client.
func NewPumpNews(baseURL string, opts ...ClientOption) *PumpNews {
	return &PumpNews{http: newHTTPClient(ProviderPumpNews, baseURL, opts...)}
}

type pumpNewsStatsBatch []struct {
	Result struct {
		Data struct {
			JSON struct {
				Data struct {
					Data []pumpNewsTokenData `json:"data"`
				} `json:"data"`
			} `json:"json"`
		} `json:"data"`
	} `json:"result"`
}

type pumpNewsTokenData struct {
	Stats struct {
		FilterTweets   number `json:"filter_tweets"`
		Followers      number `json:"followers"`
		Likes          number `json:"likes"`
		Views          number `json:"views"`
		OfficialTweets number `json:"official_tweets"`
	} `json:"stats"`
	SmartBuy number `json:"smartbuy"`
	Analysis struct {
		ZhCN struct {
			Summary string `json:"summary"`
		} `json:"lang-zh-CN"`
	} `json:"analysis"`
}

type pumpNewsTweetsBatch []struct {
	Result struct {
		Data struct {
			JSON struct {
				Data struct {
					Data struct {
						Tweets []pumpNewsTweet `json:"tweets"`
					} `json:"data"`
				} `json:"data"`
			} `json:"json"`
		} `json:"data"`
	} `json:"result"`
}

type pumpNewsTweet struct {
	TweetID string `json:"tweet_id"`
	Text    string `json:"text"`
	User    struct {
		Name           string `json:"name"`
		ScreenName     string `json:"screen_name"`
		IsBlueVerified bool   `json:"is_blue_verified"`
		FollowersCount number `json:"followers_count"`
	} `json:"user"`
	CreatedAt     number `json:"created_at"` // seconds, usually a string
	RetweetCount  number `json:"retweet_count"`
	FavoriteCount number `json:"favorite_count"`
	Views         number `json:"views"`
	Medias        []struct {
		ImageURL string `json:"image_url"`
	} `json:"medias"`
}

// FetchSocial returns social stats and the top tweets for mint.
// Either underlying call failing fails the fetch.
func (p *PumpNews) FetchSocial(ctx context.Context, mint string) (*domain.SocialProfile, error) {
	stats, err := p.fetchStats(ctx, mint)
	if err != nil {
		return nil, err
	}
	tweets, err := p.fetchTweets(ctx, mint)
	if err != nil {
		return nil, err
	}
	return &domain.SocialProfile{Stats: *stats, Tweets: tweets}, nil
}

func (p *PumpNews) fetchStats(ctx context.Context, mint string) (*domain.SocialStats, error) {
	input, err := trpcInput(map[string]interface{}{"tokenAddresses": []string{mint}})
	if err != nil {
		return nil, p.http.fail(KindDecode, fmt.Errorf("marshal input: %w", err))
	}
	q := url.Values{}
	q.Set("batch", "1")
	q.Set("input", input)

	var batch pumpNewsStatsBatch
	if err := p.http.getJSON(ctx, "/api/trpc/analyze.getBatchTokenDataByTokenAddress", q, &batch); err != nil {
		return nil, err
	}
	if len(batch) == 0 || len(batch[0].Result.Data.JSON.Data.Data) == 0 {
		return nil, p.http.fail(KindEmptyResult, errors.New("no social stats"))
	}

	d := batch[0].Result.Data.JSON.Data.Data[0]
	return &domain.SocialStats{
		FilterTweets:   d.Stats.FilterTweets.Int(),
		Followers:      d.Stats.Followers.Int(),
		Likes:          d.Stats.Likes.Int(),
		Views:          d.Stats.Views.Int(),
		OfficialTweets: d.Stats.OfficialTweets.Int(),
		SmartBuy:       d.SmartBuy.Int(),
		Summary:        d.Analysis.ZhCN.Summary,
	}, nil
}

func (p *PumpNews) fetchTweets(ctx context.Context, mint string) ([]domain.Tweet, error) {
	input, err := trpcInput(map[string]interface{}{
		"tokenAddress": mint,
		"type":         "filter",
		"category":     "top",
	})
	if err != nil {
		return nil, p.http.fail(KindDecode, fmt.Errorf("marshal input: %w", err))
	}
	q := url.Values{}
	q.Set("batch", "1")
	q.Set("input", input)

	var batch pumpNewsTweetsBatch
	if err := p.http.getJSON(ctx, "/api/trpc/tweets.getTweetsByTokenAddress", q, &batch); err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, p.http.fail(KindEmptyResult, errors.New("no tweets result"))
	}

	raw := batch[0].Result.Data.JSON.Data.Data.Tweets
	tweets := make([]domain.Tweet, 0, len(raw))
	for _, t := range raw {
		tw := domain.Tweet{
			ID:             t.TweetID,
			Text:           t.Text,
			UserName:       t.User.Name,
			UserScreenName: t.User.ScreenName,
			Verified:       t.User.IsBlueVerified,
			Followers:      t.User.FollowersCount.Int(),
			Likes:          t.FavoriteCount.Int(),
			Retweets:       t.RetweetCount.Int(),
			Views:          t.Views.Int(),
			CreatedAt:      unixSeconds(t.CreatedAt),
		}
		if len(t.Medias) > 0 {
			tw.ImageURL = t.Medias[0].ImageURL
		}
		tweets = append(tweets, tw)
	}
	return tweets, nil
}
