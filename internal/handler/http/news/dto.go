// Package news provides the HTTP handlers for the public read API:
// category article listings and trending topics.
package news

import (
	"time"

	"newspulse/internal/domain/entity"
)

// ArticleDTO represents the JSON structure for a single article.
type ArticleDTO struct {
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Source      string       `json:"source"`
	Category    string       `json:"category"`
	PublishedAt time.Time    `json:"published_at"`
	Tone        float64      `json:"tone"`
	Location    *LocationDTO `json:"location,omitempty"`
}

// LocationDTO carries the optional provider geocoding of an article.
type LocationDTO struct {
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TopicDTO represents the JSON structure for a trending topic.
type TopicDTO struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Sentiment float64 `json:"sentiment"`
	Category  string  `json:"category"`
}

// ArticlesResponse is the payload of the article listing endpoint.
type ArticlesResponse struct {
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Articles []ArticleDTO `json:"articles"`
}

// TrendingResponse is the payload of the trending endpoint.
type TrendingResponse struct {
	Count  int        `json:"count"`
	Topics []TopicDTO `json:"topics"`
}

func toArticleDTO(a entity.Article) ArticleDTO {
	dto := ArticleDTO{
		Title:       a.Title,
		URL:         a.URL,
		Source:      a.Source,
		Category:    string(a.Category),
		PublishedAt: a.PublishedAt,
		Tone:        a.Tone,
	}
	if a.Location != nil {
		dto.Location = &LocationDTO{
			Country:   a.Location.Country,
			Latitude:  a.Location.Latitude,
			Longitude: a.Location.Longitude,
		}
	}
	return dto
}

func toTopicDTO(t entity.TrendingTopic) TopicDTO {
	return TopicDTO{
		Name:      t.Name,
		Count:     t.Count,
		Sentiment: t.Sentiment,
		Category:  string(t.Category),
	}
}
