package news

import (
	"log/slog"
	"net/http"
)

// Register registers the public read endpoints with the given mux.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("GET /api/articles", ArticlesHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/trending", TrendingHandler{Svc: svc, Logger: logger})
}
