package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/BaderVance/BucketListify/internal/ctxkeys"
	"github.com/BaderVance/BucketListify/internal/model"
	"github.com/BaderVance/BucketListify/internal/service"
)

type GoalHandler struct {
	goalService  *service.GoalService
	photoService *service.PhotoService
}

func NewGoalHandler(goalService *service.GoalService, photoService *service.PhotoService) *GoalHandler {
	return &GoalHandler{
		goalService:  goalService,
		photoService: photoService,
	}
}

type createGoalRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Deadline    *time.Time   `json:"deadline"`
	Location    *model.Point `json:"location"`
	IsPublic    *bool        `json:"isPublic"`
	Progress    int          `json:"progress"`
}

type updateGoalRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Deadline    *time.Time   `json:"deadline"`
	Location    *model.Point `json:"location"`
	IsPublic    *bool        `json:"isPublic"`
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

type noteRequest struct {
	Content string `json:"content"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.Create(user.ID, service.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		Location:    req.Location,
		IsPublic:    req.IsPublic,
		Progress:    req.Progress,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) My(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Owned(user.ID)
	if err != nil {
		slog.Error("failed to list goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Error fetching goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Public(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.PublicFeed()
	if err != nil {
		slog.Error("failed to list public goals", "error", err)
		respondError(w, http.StatusInternalServerError, "Error fetching public goals")
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "lng: must be a number")
		return
	}
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "lat: must be a number")
		return
	}

	radiusKm := 50.0
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "radius_km: must be a number")
			return
		}
	}

	goals, err := h.goalService.Nearby(lng, lat, radiusKm)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.Get(goalID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.Update(goalID, user.ID, service.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		Location:    req.Location,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(goalID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}

func (h *GoalHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req progressRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Progress == nil {
		respondError(w, http.StatusUnprocessableEntity, "progress: progress is required")
		return
	}

	goal, err := h.goalService.SetProgress(goalID, user.ID, *req.Progress)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ToggleLike(goalID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req noteRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.AddNote(goalID, user.ID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := r.ParseMultipartForm(10 << 20)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "photo: photo file is required")
		return
	}
	defer func() { _ = file.Close() }()

	caption := r.FormValue("caption")

	goal, err := h.photoService.Upload(goalID, user.ID, file, header, caption)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.Owned(user.ID)
	if err != nil {
		slog.Error("failed to list goals for export", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "Failed to export goals")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")

	err = json.NewEncoder(w).Encode(goals)
	if err != nil {
		slog.Error("failed to encode goals", "error", err, "user_id", user.ID)
	}
}
