package service

import (
	"net/url"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

const (
	defaultComposeUrl  = "https://warpcast.com/~/compose"
	defaultFallbackUrl = "https://warpcast.com/~/open"
)

// BuildShareURL composes a social post URL with the text and embedded link,
// for the frame host's compose action.
func BuildShareURL(serverCtx *svc.ServerCtx, p entity.ShareParams) (*entity.ShareResp, error) {
	if p.Text == "" && p.EmbedURL == "" {
		return nil, errcode.ErrInvalidParams
	}
	compose := defaultComposeUrl
	if serverCtx.C.Frame != nil && serverCtx.C.Frame.ComposeUrl != "" {
		compose = serverCtx.C.Frame.ComposeUrl
	}
	q := url.Values{}
	if p.Text != "" {
		q.Set("text", p.Text)
	}
	if p.EmbedURL != "" {
		q.Set("embeds[]", p.EmbedURL)
	}
	return &entity.ShareResp{ComposeURL: compose + "?" + q.Encode()}, nil
}

// BuildOpenURL validates an external link and pairs it with the browser
// fallback the client uses when the host cannot open URLs itself.
func BuildOpenURL(serverCtx *svc.ServerCtx, target string) (*entity.OpenURLResp, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errcode.NewCustomErr("only http(s) urls can be opened")
	}
	fallback := defaultFallbackUrl
	if serverCtx.C.Frame != nil && serverCtx.C.Frame.FallbackUrl != "" {
		fallback = serverCtx.C.Frame.FallbackUrl
	}
	return &entity.OpenURLResp{
		URL:         target,
		FallbackURL: fallback + "?url=" + url.QueryEscape(target),
	}, nil
}
