package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/routinelog/apiserver/config"
	"github.com/routinelog/apiserver/internal/services"
	"github.com/routinelog/apiserver/internal/store"
	"github.com/routinelog/apiserver/types"
)

// RoutineHandler provides HTTP handlers for routine items.
type RoutineHandler struct {
	routineService *services.RoutineService
	accessMode     string
}

// NewRoutineHandler constructs a handler with the provided service and
// item-level access mode (config.RoutineAccessOwner or RoutineAccessOpen).
func NewRoutineHandler(routineService *services.RoutineService, accessMode string) *RoutineHandler {
	return &RoutineHandler{
		routineService: routineService,
		accessMode:     accessMode,
	}
}

// RoutineRouter registers routine routes on the given router. The collection
// endpoints always require a session; the item endpoints require one only in
// owner mode, where items also become invisible to anyone but their owner.
func RoutineRouter(
	r chi.Router,
	routineService *services.RoutineService,
	requireSession func(http.Handler) http.Handler,
	accessMode string,
) {
	handler := NewRoutineHandler(routineService, accessMode)

	r.With(requireSession).Get("/routines", handler.ListRoutineItems)
	r.With(requireSession).Post("/routines", handler.CreateRoutineItem)
	r.Route("/routines/{routineID}", func(r chi.Router) {
		if accessMode == config.RoutineAccessOwner {
			r.Use(requireSession)
		}
		r.Get("/", handler.GetRoutineItem)
		r.Patch("/", handler.PatchRoutineItem)
		r.Delete("/", handler.DeleteRoutineItem)
	})
}

// ListRoutineItems returns the caller's routine. An empty routine is a 200
// with an empty array.
func (h *RoutineHandler) ListRoutineItems(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not logged in")
		return
	}

	items, err := h.routineService.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list routine items")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// CreateRoutineItem persists a new routine item for the caller. The owning
// user is always the session's, regardless of the request body.
func (h *RoutineHandler) CreateRoutineItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "User not logged in")
		return
	}

	var req RoutineItemCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item, err := req.toItem(userID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := validateRoutineValues(item); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := h.routineService.Create(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create routine item")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetRoutineItem returns a single routine item by id.
func (h *RoutineHandler) GetRoutineItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.fetchItem(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// PatchRoutineItem applies a partial update. Only the schedule and progress
// fields are mutable; id and user_id can never be rewritten through this
// endpoint. An empty body is a no-op that still answers 202.
func (h *RoutineHandler) PatchRoutineItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.fetchItem(w, r)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if len(body) == 0 {
		writeJSON(w, http.StatusAccepted, item)
		return
	}

	for key, raw := range body {
		if err := applyRoutineField(&item, key, raw); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if err := validateRoutineValues(item); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := h.routineService.Update(r.Context(), item)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "routine item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update routine item")
		return
	}

	writeJSON(w, http.StatusAccepted, updated)
}

// DeleteRoutineItem removes a routine item and answers an empty 204.
func (h *RoutineHandler) DeleteRoutineItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.fetchItem(w, r)
	if !ok {
		return
	}

	if err := h.routineService.Delete(r.Context(), item.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "routine item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete routine item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fetchItem resolves the path id and, in owner mode, hides items the caller
// does not own. A written response means ok is false.
func (h *RoutineHandler) fetchItem(w http.ResponseWriter, r *http.Request) (types.RoutineItem, bool) {
	id, err := parseRoutineID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "routine item not found")
		return types.RoutineItem{}, false
	}

	item, err := h.routineService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "routine item not found")
			return types.RoutineItem{}, false
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch routine item")
		return types.RoutineItem{}, false
	}

	if h.accessMode == config.RoutineAccessOwner {
		userID, err := userIDFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "User not logged in")
			return types.RoutineItem{}, false
		}
		// Foreign items answer 404, not 403, so ids cannot be probed.
		if item.UserID != userID {
			writeError(w, http.StatusNotFound, "routine item not found")
			return types.RoutineItem{}, false
		}
	}

	return item, true
}

func parseRoutineID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "routineID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid routine item id")
	}
	return id, nil
}

// RoutineItemCreateRequest carries the full set of fields required to create
// a routine item. Pointers distinguish "absent" from zero so missing fields
// can be reported by name.
type RoutineItemCreateRequest struct {
	ExerciseID    *int     `json:"exercise_id"`
	InitialWeight *float64 `json:"initial_weight"`
	CurrentWeight *float64 `json:"current_weight"`
	InitialReps   *int     `json:"initial_reps"`
	CurrentReps   *int     `json:"current_reps"`
	InitialSets   *int     `json:"initial_sets"`
	CurrentSets   *int     `json:"current_sets"`
	Priority      *int     `json:"priority"`
	DayOfTheWeek  *int     `json:"day_of_the_week"`
}

func (req RoutineItemCreateRequest) toItem(userID int) (types.RoutineItem, error) {
	required := []struct {
		name    string
		present bool
	}{
		{"exercise_id", req.ExerciseID != nil},
		{"initial_weight", req.InitialWeight != nil},
		{"current_weight", req.CurrentWeight != nil},
		{"initial_reps", req.InitialReps != nil},
		{"current_reps", req.CurrentReps != nil},
		{"initial_sets", req.InitialSets != nil},
		{"current_sets", req.CurrentSets != nil},
		{"priority", req.Priority != nil},
		{"day_of_the_week", req.DayOfTheWeek != nil},
	}
	for _, field := range required {
		if !field.present {
			return types.RoutineItem{}, fmt.Errorf("%s is required", field.name)
		}
	}

	return types.RoutineItem{
		UserID:        userID,
		ExerciseID:    *req.ExerciseID,
		InitialWeight: *req.InitialWeight,
		CurrentWeight: *req.CurrentWeight,
		InitialReps:   *req.InitialReps,
		CurrentReps:   *req.CurrentReps,
		InitialSets:   *req.InitialSets,
		CurrentSets:   *req.CurrentSets,
		Priority:      *req.Priority,
		DayOfTheWeek:  *req.DayOfTheWeek,
	}, nil
}

// applyRoutineField assigns one PATCH key onto the item. Keys outside the
// allow-list, including id and user_id, are rejected.
func applyRoutineField(item *types.RoutineItem, key string, raw json.RawMessage) error {
	var target any
	switch key {
	case "exercise_id":
		target = &item.ExerciseID
	case "initial_weight":
		target = &item.InitialWeight
	case "current_weight":
		target = &item.CurrentWeight
	case "initial_reps":
		target = &item.InitialReps
	case "current_reps":
		target = &item.CurrentReps
	case "initial_sets":
		target = &item.InitialSets
	case "current_sets":
		target = &item.CurrentSets
	case "priority":
		target = &item.Priority
	case "day_of_the_week":
		target = &item.DayOfTheWeek
	default:
		return fmt.Errorf("field %q cannot be updated", key)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid value for %q", key)
	}
	return nil
}

func validateRoutineValues(item types.RoutineItem) error {
	if item.ExerciseID < 1 {
		return errors.New("exercise_id must be a positive id")
	}
	if item.InitialWeight < 0 || item.CurrentWeight < 0 {
		return errors.New("weight must not be negative")
	}
	if item.InitialReps < 0 || item.CurrentReps < 0 {
		return errors.New("reps must not be negative")
	}
	if item.InitialSets < 0 || item.CurrentSets < 0 {
		return errors.New("sets must not be negative")
	}
	if item.Priority < 0 {
		return errors.New("priority must not be negative")
	}
	if item.DayOfTheWeek < 1 || item.DayOfTheWeek > 7 {
		return errors.New("day_of_the_week must be between 1 and 7")
	}
	return nil
}
