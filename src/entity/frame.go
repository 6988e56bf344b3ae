package entity

type ShareParams struct {
	Text     string `json:"text"`
	EmbedURL string `json:"embed_url"`
}

type ShareResp struct {
	ComposeURL string `json:"compose_url"`
}

type OpenURLResp struct {
	URL         string `json:"url"`
	FallbackURL string `json:"fallback_url"`
}
