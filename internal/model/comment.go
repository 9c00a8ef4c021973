package model

import "intelligence-srv/internal/intelligence"

// CommentRecord is one line of a classified comment batch (JSONL).
type CommentRecord struct {
	Author           string   `json:"author"`
	Comment          string   `json:"comment"`
	PublishedAt      string   `json:"published_at"`
	VideoTitle       string   `json:"video_title"`
	VideoType        string   `json:"video_type"`
	VideoURL         string   `json:"video_url"`
	Sentiment        string   `json:"sentiment"`
	Language         string   `json:"language"`
	Confidence       *float64 `json:"confidence,omitempty"`
	NegativeCategory string   `json:"negative_category"`
}

// ToClassified hands the raw labels to the engine, which normalizes them.
func (r CommentRecord) ToClassified() intelligence.ClassifiedComment {
	return intelligence.ClassifiedComment{
		Author:           r.Author,
		Text:             r.Comment,
		PublishedAt:      r.PublishedAt,
		VideoTitle:       r.VideoTitle,
		VideoType:        intelligence.Stage(r.VideoType),
		VideoURL:         r.VideoURL,
		Sentiment:        intelligence.Sentiment(r.Sentiment),
		Language:         intelligence.Language(r.Language),
		Confidence:       r.Confidence,
		NegativeCategory: intelligence.Category(r.NegativeCategory),
	}
}
