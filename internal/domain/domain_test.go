package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelMapLabels(t *testing.T) {
	m := LabelMap{
		"a": {{Label: "kol"}, {Label: ""}, {Label: "sniper"}},
		"b": {{Label: ""}},
	}

	assert.Equal(t, []string{"kol", "sniper"}, m.Labels("a"))
	assert.Nil(t, m.Labels("b"))
	assert.Nil(t, m.Labels("missing"))
	assert.Nil(t, LabelMap(nil).Labels("a"))
}

func TestSmartMoneySummaryNet(t *testing.T) {
	s := SmartMoneySummary{BuyVolume: 5, SellVolume: 12.5}
	assert.InDelta(t, -7.5, s.NetVolume(), 1e-9)
	assert.False(t, s.IsNetBuy())

	assert.True(t, SmartMoneySummary{}.IsNetBuy(), "zero net counts as buy")
}

func TestTokenProfileHasCreator(t *testing.T) {
	var p *TokenProfile
	assert.False(t, p.HasCreator())
	assert.False(t, (&TokenProfile{}).HasCreator())
	assert.True(t, (&TokenProfile{Creator: "x"}).HasCreator())
}

func TestTweetURL(t *testing.T) {
	assert.Equal(t, "https://twitter.com/alice/status/42", Tweet{ID: "42", UserScreenName: "alice"}.URL())
	assert.Empty(t, Tweet{ID: "42"}.URL())
}
