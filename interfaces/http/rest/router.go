package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sceneflow/application/flow"
	"sceneflow/application/services"
	"sceneflow/interfaces/http/rest/handlers"
	"sceneflow/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	flow       *flow.Store
	scenes     *services.SceneService
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(
	flowStore *flow.Store,
	scenes *services.SceneService,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		flow:       flowStore,
		scenes:     scenes,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)

	router.Route("/api/v1/scene", func(r chi.Router) {
		sceneHandler := handlers.NewSceneHandler(rt.flow, rt.scenes, rt.logger)

		r.Get("/", sceneHandler.GetScene)

		r.Route("/nodes", func(r chi.Router) {
			r.Post("/", sceneHandler.AddNode)
			r.Post("/changes", sceneHandler.ApplyNodeChanges)
			r.Delete("/{nodeID}", sceneHandler.DeleteNode)
			r.Put("/{nodeID}/title", sceneHandler.EditTitle)
			r.Post("/{nodeID}/title/commit", sceneHandler.CommitTitle)
			r.Put("/{nodeID}/summary", sceneHandler.EditSummary)
			r.Post("/{nodeID}/editing", sceneHandler.StartEditing)
		})

		r.Route("/edges", func(r chi.Router) {
			r.Post("/", sceneHandler.ConnectEdge)
			r.Post("/changes", sceneHandler.ApplyEdgeChanges)
			r.Delete("/{edgeID}", sceneHandler.RemoveEdge)
		})

		r.Put("/selection", sceneHandler.SelectNode)
		r.Delete("/editing", sceneHandler.CancelEditing)

		r.Post("/save", sceneHandler.Save)
		r.Post("/load", sceneHandler.Load)
		r.Post("/import", sceneHandler.Import)
		r.Post("/new", sceneHandler.NewScene)
		r.Get("/export", sceneHandler.Export)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
