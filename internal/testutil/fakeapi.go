package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// RecordedRequest is what FakeAPI saw for one request.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

// APITask is a task as FakeAPI stores and returns it.
type APITask struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

type apiUser struct {
	Name     string
	Password string
}

type failure struct {
	status  int
	message string
}

// FakeAPI is an httptest server speaking the task API. Mutating routes
// require "Authorization: Bearer <FakeToken>". Task IDs are random UUIDs,
// like a real server would assign.
type FakeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	tasks    []APITask
	users    map[string]apiUser
	requests []RecordedRequest
	failures map[string]failure
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		users:    make(map[string]apiUser),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /task", f.listTasks)
	mux.HandleFunc("GET /task/{id}", f.getTask)
	mux.HandleFunc("POST /task", f.requireAuth(f.createTask))
	mux.HandleFunc("PUT /task/{id}", f.requireAuth(f.updateTask))
	mux.HandleFunc("DELETE /task/{id}", f.requireAuth(f.deleteTask))
	mux.HandleFunc("POST /user/register", f.register)
	mux.HandleFunc("POST /user/login", f.login)

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server's base URL.
func (f *FakeAPI) URL() string { return f.Server.URL }

// Fail makes every request matching method and route answer status with
// message. route is the mux pattern path, e.g. "/task/{id}".
func (f *FakeAPI) Fail(method, route string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+route] = failure{status: status, message: message}
}

// Seed adds a task directly and returns its ID.
func (f *FakeAPI) Seed(title, description, dueDate, status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.tasks = append(f.tasks, APITask{ID: id, Title: title, Description: description, DueDate: dueDate, Status: status})
	return id
}

// Tasks returns a copy of the stored tasks.
func (f *FakeAPI) Tasks() []APITask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APITask(nil), f.tasks...)
}

// Requests returns every request seen so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) injected(w http.ResponseWriter, r *http.Request) bool {
	f.mu.Lock()
	fail, ok := f.failures[r.Pattern]
	f.mu.Unlock()
	if !ok {
		return false
	}
	writeJSON(w, fail.status, map[string]string{"message": fail.message})
	return true
}

func (f *FakeAPI) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next(w, r)
	}
}

func (f *FakeAPI) listTasks(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": f.Tasks()})
}

func (f *FakeAPI) getTask(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.indexOf(r.PathValue("id")); i >= 0 {
		writeJSON(w, http.StatusOK, map[string]any{"task": f.tasks[i]})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
}

func (f *FakeAPI) createTask(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	var in APITask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}
	if in.Status == "" {
		in.Status = "pending"
	}
	in.ID = uuid.NewString()

	f.mu.Lock()
	f.tasks = append(f.tasks, in)
	f.mu.Unlock()
	writeJSON(w, http.StatusCreated, in)
}

func (f *FakeAPI) updateTask(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	var in APITask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(r.PathValue("id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	in.ID = f.tasks[i].ID
	f.tasks[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (f *FakeAPI) deleteTask(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(r.PathValue("id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[in.Email]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	f.users[in.Email] = apiUser{Name: in.Name, Password: in.Password}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, r) {
		return
	}
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid body"})
		return
	}

	f.mu.Lock()
	u, ok := f.users[in.Email]
	f.mu.Unlock()
	if !ok || u.Password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": FakeToken})
}

// indexOf must be called with f.mu held.
func (f *FakeAPI) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
