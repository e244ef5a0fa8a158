package news

import (
	"context"
	"log/slog"
	"net/http"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
)

// Service is the read facade the handlers query. Implemented by
// usecase/news.Service.
type Service interface {
	GetArticlesByCategory(ctx context.Context, category entity.Category) []entity.Article
	GetTrendingTopics(ctx context.Context) []entity.TrendingTopic
}

// ArticlesHandler serves GET /api/articles?category=<name>.
type ArticlesHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP returns the newest cached articles for one category. An empty
// result is a valid 200 answer; only an unknown category is a client error.
func (h ArticlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	raw := r.URL.Query().Get("category")
	if raw == "" {
		respond.SafeError(w, http.StatusBadRequest, &entity.ValidationError{
			Field: "category", Message: "is required",
		})
		return
	}

	category, err := entity.ParseCategory(raw)
	if err != nil {
		logger.Warn("rejected article listing request",
			slog.String("category", raw),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles := h.Svc.GetArticlesByCategory(ctx, category)

	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toArticleDTO(a))
	}

	respond.JSON(w, http.StatusOK, ArticlesResponse{
		Category: string(category),
		Count:    len(dtos),
		Articles: dtos,
	})
}
