package routes

import (
	"net/http"

	"github.com/BaderVance/BucketListify/internal/app"
	"github.com/BaderVance/BucketListify/internal/handler"
	"github.com/BaderVance/BucketListify/internal/middleware"
)

func SetupRoutes(a *app.App) http.Handler {
	// Handlers
	goal := handler.NewGoalHandler(a.GoalService, a.PhotoService)
	health := handler.NewHealthHandler(a.DB)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /healthz", health.Healthz)

	// Goals — every route requires a resolved identity; per-goal
	// authorization lives in the service layer.
	mux.HandleFunc("POST /goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /goals/my", middleware.RequireAuth(goal.My))
	mux.HandleFunc("GET /goals/public", middleware.RequireAuth(goal.Public))
	mux.HandleFunc("GET /goals/nearby", middleware.RequireAuth(goal.Nearby))
	mux.HandleFunc("GET /goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("GET /goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("PATCH /goals/{id}/progress", middleware.RequireAuth(goal.SetProgress))
	mux.HandleFunc("POST /goals/{id}/like", middleware.RequireAuth(goal.ToggleLike))
	mux.HandleFunc("POST /goals/{id}/notes", middleware.RequireAuth(goal.AddNote))
	mux.HandleFunc("POST /goals/{id}/photos", middleware.RequireAuth(goal.UploadPhoto))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.CORS(a.Cfg.CORSAllowedOrigins),
		middleware.Auth(a.Cfg.JWTSecret, a.ProfileRepository),
	)

	return h
}
