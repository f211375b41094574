package handlers_test

import (
	"net/http"
	"testing"

	"github.com/routinelog/apiserver/types"
)

func TestExerciseCatalogIsPublic(t *testing.T) {
	router, f := newOwnerRouter()
	f.exercises.seed(
		types.Exercise{ID: 1, Name: "Barbell Back Squat", MuscleGroup: "legs"},
		types.Exercise{ID: 2, Name: "Bench Press", MuscleGroup: "chest"},
	)
	client := newClient(t, router)

	rec := client.do(http.MethodGet, "/api/exercises", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without a session, got %d", rec.Code)
	}

	var exercises []types.Exercise
	decodeBody(t, rec, &exercises)
	if len(exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(exercises))
	}
	if exercises[0].Name != "Barbell Back Squat" {
		t.Fatalf("unexpected first exercise: %+v", exercises[0])
	}
}

func TestExerciseEmptyCatalogIsOK(t *testing.T) {
	router, _ := newOwnerRouter()
	client := newClient(t, router)

	rec := client.do(http.MethodGet, "/api/exercises", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty catalog, got %d", rec.Code)
	}
	var exercises []types.Exercise
	decodeBody(t, rec, &exercises)
	if exercises == nil || len(exercises) != 0 {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}
