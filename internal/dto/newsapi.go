package dto

import "time"

// NewsAPIResponse mirrors the /v2/everything payload.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

type NewsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// UpstreamArticle is a parsed headline as returned by the news provider.
type UpstreamArticle struct {
	Title       string
	URL         string
	PublishedAt time.Time
}
