package news

import (
	"log/slog"
	"net/http"

	"newspulse/internal/handler/http/respond"
)

// TrendingHandler serves GET /api/trending.
type TrendingHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP returns the current trending topics. With no scrape data at
// all the facade already substitutes the static fallback list, so this
// endpoint never fails for lack of data.
func (h TrendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	topics := h.Svc.GetTrendingTopics(r.Context())

	dtos := make([]TopicDTO, 0, len(topics))
	for _, t := range topics {
		dtos = append(dtos, toTopicDTO(t))
	}

	respond.JSON(w, http.StatusOK, TrendingResponse{
		Count:  len(dtos),
		Topics: dtos,
	})
}
