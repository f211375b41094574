package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/routinelog/apiserver/config"
	"github.com/routinelog/apiserver/internal/handlers"
	"github.com/routinelog/apiserver/internal/services"
	"github.com/routinelog/apiserver/internal/session"
	"github.com/routinelog/apiserver/internal/store"
	"github.com/routinelog/apiserver/types"
)

// fixtures exposes the in-memory repositories behind a test router so tests
// can seed and inspect state directly.
type fixtures struct {
	users     *fakeUserRepo
	routines  *fakeRoutineRepo
	exercises *fakeExerciseRepo
}

func newTestRouter(accessMode string) (http.Handler, *fixtures) {
	f := &fixtures{
		users:     newFakeUserRepo(),
		routines:  newFakeRoutineRepo(),
		exercises: &fakeExerciseRepo{},
	}

	userService := services.NewUserService(f.users)
	routineService := services.NewRoutineService(f.routines)
	exerciseService := services.NewExerciseService(f.exercises)

	sessionManager := session.NewManager("test-secret", time.Hour)
	requireSession := handlers.RequireSession(sessionManager)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessionManager)
		handlers.AccountRouter(r, userService, requireSession)
		handlers.RoutineRouter(r, routineService, requireSession, accessMode)
		handlers.ExerciseRouter(r, exerciseService)
	})
	return router, f
}

func newOwnerRouter() (http.Handler, *fixtures) {
	return newTestRouter(config.RoutineAccessOwner)
}

// testClient drives a router while carrying cookies across requests, the way
// a browser would carry the session cookie.
type testClient struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, router http.Handler) *testClient {
	return &testClient{
		t:       t,
		router:  router,
		cookies: make(map[string]*http.Cookie),
	}
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

// register + login through the API and return the logged-in user's id.
func (c *testClient) loginAs(name, email, password string) int {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/api/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		c.t.Fatalf("register %s: status %d body %s", email, rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		c.t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}

	var parsed struct {
		ID int `json:"id"`
	}
	decodeBody(c.t, rec, &parsed)
	return parsed.ID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var parsed struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &parsed)
	return parsed.Error
}

func validRoutineBody() map[string]any {
	return map[string]any{
		"exercise_id":     1,
		"initial_weight":  100,
		"current_weight":  100,
		"initial_reps":    10,
		"current_reps":    10,
		"initial_sets":    3,
		"current_sets":    3,
		"priority":        1,
		"day_of_the_week": 1,
	}
}

// --- in-memory repositories ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]types.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

type fakeRoutineRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]types.RoutineItem
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{items: make(map[int]types.RoutineItem)}
}

func (f *fakeRoutineRepo) ListByUser(_ context.Context, userID int) ([]types.RoutineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]types.RoutineItem, 0)
	for id := 1; id <= f.nextID; id++ {
		if item, ok := f.items[id]; ok && item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeRoutineRepo) Get(_ context.Context, id int) (types.RoutineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return types.RoutineItem{}, store.ErrNotFound
	}
	return item, nil
}

func (f *fakeRoutineRepo) Create(_ context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRoutineRepo) Update(_ context.Context, item types.RoutineItem) (types.RoutineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return types.RoutineItem{}, store.ErrNotFound
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRoutineRepo) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []types.Exercise
}

func (f *fakeExerciseRepo) List(_ context.Context) ([]types.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Exercise, len(f.exercises))
	copy(out, f.exercises)
	return out, nil
}

func (f *fakeExerciseRepo) seed(exercises ...types.Exercise) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exercises = append(f.exercises, exercises...)
}
