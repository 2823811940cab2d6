package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"topocanvas/infrastructure/di"
	"topocanvas/interfaces/http/rest/handlers"
	"topocanvas/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()
	cfg := rt.container.Config

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	if cfg.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", rt.container.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.container.JWT, rt.container.RateLimiter, rt.logger))

		graphHandler := handlers.NewGraphHandler(rt.container.QueryBus, rt.logger)
		r.Get("/graph", graphHandler.GetGraphData)
		r.Get("/annotations", graphHandler.GetAnnotations)

		historyHandler := handlers.NewHistoryHandler(rt.container.History, rt.container.QueryBus, rt.logger)
		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Post("/undo", historyHandler.Undo)
			r.Post("/redo", historyHandler.Redo)
		})

		annotationHandler := handlers.NewAnnotationHandler(rt.container.CommandBus, rt.logger)
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", annotationHandler.CreateGroup)
			r.Put("/{groupID}", annotationHandler.UpdateGroup)
			r.Put("/{groupID}/size", annotationHandler.ResizeGroup)
			r.Put("/{groupID}/position", annotationHandler.MoveGroup)
			r.Delete("/{groupID}", annotationHandler.DeleteGroup)
		})
		r.Put("/membership", annotationHandler.ChangeMembership)

		r.Route("/texts", func(r chi.Router) {
			r.Post("/", annotationHandler.CreateText)
			r.Put("/{textID}", annotationHandler.UpdateText)
			r.Delete("/{textID}", annotationHandler.DeleteText)
		})
		r.Route("/shapes", func(r chi.Router) {
			r.Post("/", annotationHandler.CreateShape)
			r.Put("/{shapeID}", annotationHandler.UpdateShape)
			r.Delete("/{shapeID}", annotationHandler.DeleteShape)
		})

		nodeHandler := handlers.NewNodeHandler(rt.container.CommandBus, rt.logger)
		r.Post("/nodes/{nodeID}/move", nodeHandler.MoveNode)
		r.Route("/gestures", func(r chi.Router) {
			r.Post("/", nodeHandler.BeginGesture)
			r.Put("/{gestureID}/frame", nodeHandler.ApplyGestureFrame)
			r.Post("/{gestureID}/end", nodeHandler.EndGesture)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
