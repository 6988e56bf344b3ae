package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
)

func TestBuildShareURL(t *testing.T) {
	serverCtx := testServerCtx(t, false)
	res, err := BuildShareURL(serverCtx, entity.ShareParams{
		Text:     "I painted day 701",
		EmbedURL: "https://basepaint.xyz/canvas/701",
	})
	require.NoError(t, err)
	assert.Contains(t, res.ComposeURL, "https://warpcast.com/~/compose?")
	assert.Contains(t, res.ComposeURL, "I+painted+day+701")
	assert.Contains(t, res.ComposeURL, "embeds")
}

func TestBuildShareURLEmptyParams(t *testing.T) {
	serverCtx := testServerCtx(t, false)
	_, err := BuildShareURL(serverCtx, entity.ShareParams{})
	assert.ErrorIs(t, err, errcode.ErrInvalidParams)
}

func TestBuildOpenURL(t *testing.T) {
	serverCtx := testServerCtx(t, false)
	res, err := BuildOpenURL(serverCtx, "https://opensea.io/assets/base/0xba5e/701")
	require.NoError(t, err)
	assert.Equal(t, "https://opensea.io/assets/base/0xba5e/701", res.URL)
	assert.Contains(t, res.FallbackURL, "url=https%3A%2F%2Fopensea.io")
}

func TestBuildOpenURLRejectsNonHTTP(t *testing.T) {
	serverCtx := testServerCtx(t, false)
	for _, bad := range []string{"javascript:alert(1)", "ftp://x", "not a url", ""} {
		_, err := BuildOpenURL(serverCtx, bad)
		assert.Error(t, err, "url %q", bad)
	}
}
