package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mdkb/internal/handlers"
	"mdkb/internal/service"
	"mdkb/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service service.KnowledgeBaseService
	Store   storage.SnapshotStore
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	kbHandler := handlers.NewKnowledgeBaseHandler(deps.Service)
	docHandler := handlers.NewDocumentHandler(deps.Service)
	previewHandler := handlers.NewPreviewHandler(deps.Service)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/knowledge-bases", func(r chi.Router) {
			r.Get("/", kbHandler.List)
			r.Post("/", kbHandler.Create)

			r.Route("/{kbID}", func(r chi.Router) {
				r.Get("/", kbHandler.Get)
				r.Delete("/", kbHandler.Delete)
				r.Get("/stats", kbHandler.Stats)
				r.Get("/documents", docHandler.List)
				r.Post("/documents", docHandler.Import)
			})
		})

		r.Route("/documents/{docID}", func(r chi.Router) {
			r.Get("/", docHandler.Get)
			r.Delete("/", docHandler.Delete)
			r.Method(http.MethodGet, "/html", previewHandler)
		})
	})

	return r
}
