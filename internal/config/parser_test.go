package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigRequiresOriginURL(t *testing.T) {
	_, err := ParseConfig([]byte(`{"search": {}}`))

	assert.ErrorIs(t, err, ErrMissingOriginURL)
}

func TestParseConfigRejectsMalformedJSON(t *testing.T) {
	_, err := ParseConfig([]byte(`{"search":`))

	assert.Error(t, err)
}

func TestParseConfigAppliesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"search": {"origin_url": "https://www.apartments.com/apartments/seattle-wa/"}}`))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Search.Workers)
	assert.Equal(t, 50, cfg.Search.MaxPages)
	assert.Equal(t, 500, cfg.Search.DelayMinMs)
	assert.Equal(t, 1000, cfg.Search.DelayMaxMs)
	assert.Equal(t, 10, cfg.Search.ScrollSteps)
	assert.Equal(t, 3, cfg.Search.ShowMoreRounds)
	assert.Equal(t, 12, cfg.Search.NextWaitSeconds)
	assert.Equal(t, "/apartments/", cfg.Search.PathPattern)
	assert.Equal(t, "results.csv", cfg.Output.ResultCSV)
	assert.Equal(t, "screened_log.csv", cfg.Output.AuditCSV)
	assert.Equal(t, EngineRod, cfg.Browser.Engine)
	assert.Equal(t, 25, cfg.Browser.PageLoadTimeoutSec)
	assert.Equal(t, 16, cfg.Embedder.BatchSize)
}

func TestParseConfigKeepsExplicitValues(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"search": {
			"origin_url": "https://www.apartments.com/apartments/seattle-wa/",
			"workers": 4,
			"max_pages": 7,
			"delay_min_ms": 200,
			"delay_max_ms": 300
		},
		"browser": {"engine": "chromedp", "page_load_timeout_sec": 40}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 7, cfg.Search.MaxPages)
	assert.Equal(t, 200, cfg.Search.DelayMinMs)
	assert.Equal(t, 300, cfg.Search.DelayMaxMs)
	assert.Equal(t, EngineChromedp, cfg.Browser.Engine)
	assert.Equal(t, 40, cfg.Browser.PageLoadTimeoutSec)
}

func TestParseConfigResolvesChromedpUserDataDir(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"search": {"origin_url": "https://www.apartments.com/apartments/seattle-wa/"},
		"browser": {"chromedp": {"user_data_dir": "chromedp-profile"}}
	}`))
	require.NoError(t, err)

	assert.True(t, len(cfg.Browser.Chromedp.UserDataDir) > len("chromedp-profile"))
}
