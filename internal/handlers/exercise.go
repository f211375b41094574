package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/routinelog/apiserver/internal/services"
)

// ExerciseHandler serves the read-only exercise catalog.
type ExerciseHandler struct {
	exerciseService *services.ExerciseService
}

func NewExerciseHandler(exerciseService *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseRouter registers exercise routes on the given router. The catalog
// is public.
func ExerciseRouter(r chi.Router, exerciseService *services.ExerciseService) {
	handler := NewExerciseHandler(exerciseService)

	r.Get("/exercises", handler.ListExercises)
}

func (h *ExerciseHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.exerciseService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list exercises")
		return
	}

	writeJSON(w, http.StatusOK, exercises)
}
