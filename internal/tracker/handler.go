package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/leetdaily/bot/internal/charts"
	"github.com/leetdaily/bot/internal/models"
)

// Handler exposes the read side of the tracker over HTTP, plus the admin
// endpoint that rolls a new daily set out of band.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type rollRequest struct {
	Difficulties []string `json:"difficulties"`
}

// RollDaily triggers a daily selection. Body is optional; without one all
// three levels are requested.
func (h *Handler) RollDaily(w http.ResponseWriter, r *http.Request) {
	levels := models.AllDifficulties()

	var req rollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Difficulties) > 0 {
		levels = levels[:0]
		for _, keyword := range req.Difficulties {
			level, ok := models.ParseDifficulty(keyword)
			if !ok {
				writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "difficulty must be 'easy', 'medium', or 'hard'"})
				return
			}
			levels = append(levels, level)
		}
	}

	selected, err := h.service.SelectDaily(r.Context(), levels)
	if err != nil {
		if errors.Is(err, ErrCatalogUnavailable) {
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Daily selection failed"})
		return
	}

	// Keyed by lowercase difficulty name for a stable JSON shape.
	resp := make(map[string]models.ProblemDescriptor, len(selected))
	for level, descriptor := range selected {
		resp[keywordFor(level)] = descriptor
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetDailySet(w http.ResponseWriter, r *http.Request) {
	set, err := h.service.DailySet(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load daily set"})
		return
	}
	if set == nil {
		set = []models.DailySelection{}
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load leaderboard"})
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) LeaderboardChart(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load leaderboard"})
		return
	}

	png, err := charts.RenderLeaderboard(entries)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to render chart"})
		return
	}
	writePNG(w, png)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDVar(w, r)
	if !ok {
		return
	}

	series, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}
	if series == nil {
		series = []models.ProgressPoint{}
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *Handler) ProgressChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDVar(w, r)
	if !ok {
		return
	}

	series, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}

	png, err := charts.RenderProgress(series)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to render chart"})
		return
	}
	writePNG(w, png)
}

func userIDVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return 0, false
	}
	return userID, true
}

func keywordFor(level models.Difficulty) string {
	switch level {
	case models.DifficultyEasy:
		return "easy"
	case models.DifficultyMedium:
		return "medium"
	default:
		return "hard"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
