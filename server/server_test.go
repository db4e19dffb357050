package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/taskdeck/internal/model"
)

// newTestServer spins up a server over a throwaway SQLite database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "taskdeck.db")
	srv, err := New("sqlite://" + dbPath)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON performs a request against the test server and decodes the JSON
// response into result (when non-nil).
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body interface{}, result interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// registerUser registers a fresh account and returns its session token.
func registerUser(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()

	var auth authResponse
	status := doJSON(t, ts, http.MethodPost, "/api/v1/register", "", map[string]string{
		"email":    email,
		"password": "hunter2hunter2",
	}, &auth)
	if status != http.StatusOK {
		t.Fatalf("register returned status %d", status)
	}
	if auth.Token == "" {
		t.Fatal("register returned empty token")
	}
	return auth.Token
}

func TestRegisterSeedsDefaultCategories(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "new@example.com")

	var cats []model.Category
	status := doJSON(t, ts, http.MethodGet, "/api/v1/categories", token, nil, &cats)
	if status != http.StatusOK {
		t.Fatalf("list categories returned status %d", status)
	}

	if len(cats) != 4 {
		t.Fatalf("expected 4 seeded categories, got %d", len(cats))
	}

	// Listing is ordered by name
	wantNames := []string{"Health", "Personal", "Shopping", "Work"}
	for i, want := range wantNames {
		if cats[i].Name != want {
			t.Errorf("category %d: expected %q, got %q", i, want, cats[i].Name)
		}
		if cats[i].Color == "" {
			t.Errorf("category %q has no color", cats[i].Name)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{"missing email", map[string]string{"password": "hunter2hunter2"}, http.StatusBadRequest},
		{"missing password", map[string]string{"email": "a@b.com"}, http.StatusBadRequest},
		{"short password", map[string]string{"email": "a@b.com", "password": "short"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := doJSON(t, ts, http.MethodPost, "/api/v1/register", "", tt.body, nil)
			if status != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, status)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "dup@example.com")

	status := doJSON(t, ts, http.MethodPost, "/api/v1/register", "", map[string]string{
		"email":    "dup@example.com",
		"password": "hunter2hunter2",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate email, got %d", status)
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "login@example.com")

	var auth authResponse
	status := doJSON(t, ts, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "hunter2hunter2",
	}, &auth)
	if status != http.StatusOK {
		t.Fatalf("login returned status %d", status)
	}
	if auth.Token == "" {
		t.Error("login returned empty token")
	}

	status = doJSON(t, ts, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong-password",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected status 401 for wrong password, got %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	status := doJSON(t, ts, http.MethodGet, "/api/v1/tasks", "", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected status 401 without token, got %d", status)
	}

	status = doJSON(t, ts, http.MethodGet, "/api/v1/tasks", "bogus-token", nil, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expected status 401 with bogus token, got %d", status)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "logout@example.com")

	if status := doJSON(t, ts, http.MethodPost, "/api/v1/logout", token, nil, nil); status != http.StatusOK {
		t.Fatalf("logout returned status %d", status)
	}

	if status := doJSON(t, ts, http.MethodGet, "/api/v1/tasks", token, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("expected status 401 after logout, got %d", status)
	}
}

func TestTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "tasks@example.com")

	// Create
	var task model.Task
	status := doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "Buy groceries",
		"priority": "high",
	}, &task)
	if status != http.StatusCreated {
		t.Fatalf("create returned status %d", status)
	}
	if task.ID == "" || task.Completed || task.CompletedAt != nil {
		t.Fatalf("unexpected new task state: %+v", task)
	}

	// Toggle on: completed_at stamped
	var toggled model.Task
	status = doJSON(t, ts, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", token, nil, &toggled)
	if status != http.StatusOK {
		t.Fatalf("toggle returned status %d", status)
	}
	if !toggled.Completed || toggled.CompletedAt == nil {
		t.Errorf("expected completed with completed_at set, got %+v", toggled)
	}

	// Toggle off: completed_at cleared
	status = doJSON(t, ts, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", token, nil, &toggled)
	if status != http.StatusOK {
		t.Fatalf("second toggle returned status %d", status)
	}
	if toggled.Completed || toggled.CompletedAt != nil {
		t.Errorf("expected pending with completed_at cleared, got %+v", toggled)
	}

	// Delete
	status = doJSON(t, ts, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete returned status %d", status)
	}
	status = doJSON(t, ts, http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", status)
	}
	status = doJSON(t, ts, http.MethodDelete, "/api/v1/tasks/"+task.ID, token, nil, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected status 404 deleting twice, got %d", status)
	}
}

func TestToggleOverdueTask(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "overdue@example.com")

	past := time.Now().UTC().Add(-72 * time.Hour)
	var task model.Task
	status := doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "Long overdue",
		"due_date": past,
	}, &task)
	if status != http.StatusCreated {
		t.Fatalf("create returned status %d", status)
	}

	// Overdue is a display flag only; it never blocks completion
	var toggled model.Task
	status = doJSON(t, ts, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", token, nil, &toggled)
	if status != http.StatusOK {
		t.Fatalf("toggle returned status %d", status)
	}
	if !toggled.Completed {
		t.Error("expected the overdue task completed")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "validate@example.com")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty title", map[string]interface{}{"title": "   "}},
		{"bad priority", map[string]interface{}{"title": "ok", "priority": "urgent"}},
		{"unknown category", map[string]interface{}{"title": "ok", "category_id": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, tt.body, nil)
			if status != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", status)
			}
		})
	}
}

func TestUpdateTaskClearsOmittedFields(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "update@example.com")

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	var task model.Task
	status := doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title":    "Walk dog",
		"due_date": due,
		"priority": "low",
	}, &task)
	if status != http.StatusCreated {
		t.Fatalf("create returned status %d", status)
	}
	if task.DueDate == nil {
		t.Fatal("expected due date to be stored")
	}

	// Full replace without due_date clears it
	var updated model.Task
	status = doJSON(t, ts, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]interface{}{
		"title": "Walk dog twice",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("update returned status %d", status)
	}
	if updated.Title != "Walk dog twice" {
		t.Errorf("expected title updated, got %q", updated.Title)
	}
	if updated.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", updated.DueDate)
	}
}

func TestUpdateTaskCompletionTransition(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "transition@example.com")

	var task model.Task
	doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "File taxes",
	}, &task)

	// Pending -> completed stamps completed_at
	var updated model.Task
	doJSON(t, ts, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]interface{}{
		"title":     "File taxes",
		"completed": true,
	}, &updated)
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("expected completed_at stamped, got %+v", updated)
	}
	stamped := *updated.CompletedAt

	// Completed -> completed leaves the stamp alone
	doJSON(t, ts, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]interface{}{
		"title":     "File taxes again",
		"completed": true,
	}, &updated)
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(stamped) {
		t.Errorf("expected completed_at unchanged, got %v want %v", updated.CompletedAt, stamped)
	}

	// Completed -> pending clears the stamp
	doJSON(t, ts, http.MethodPut, "/api/v1/tasks/"+task.ID, token, map[string]interface{}{
		"title": "File taxes",
	}, &updated)
	if updated.Completed || updated.CompletedAt != nil {
		t.Errorf("expected completed_at cleared, got %+v", updated)
	}
}

func TestTaskOwnerScoping(t *testing.T) {
	ts := newTestServer(t)
	alice := registerUser(t, ts, "alice@example.com")
	bob := registerUser(t, ts, "bob@example.com")

	var task model.Task
	doJSON(t, ts, http.MethodPost, "/api/v1/tasks", alice, map[string]interface{}{
		"title": "Alice's secret",
	}, &task)

	if status := doJSON(t, ts, http.MethodGet, "/api/v1/tasks/"+task.ID, bob, nil, nil); status != http.StatusNotFound {
		t.Errorf("expected status 404 reading another user's task, got %d", status)
	}
	if status := doJSON(t, ts, http.MethodDelete, "/api/v1/tasks/"+task.ID, bob, nil, nil); status != http.StatusNotFound {
		t.Errorf("expected status 404 deleting another user's task, got %d", status)
	}

	var tasks []model.Task
	doJSON(t, ts, http.MethodGet, "/api/v1/tasks", bob, nil, &tasks)
	if len(tasks) != 0 {
		t.Errorf("expected bob to see no tasks, got %d", len(tasks))
	}
}

func TestUpcomingTasksWindow(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "upcoming@example.com")

	now := time.Now().UTC()
	create := func(title string, due *time.Time, completed bool) {
		body := map[string]interface{}{"title": title, "completed": completed}
		if due != nil {
			body["due_date"] = due
		}
		if status := doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, body, nil); status != http.StatusCreated {
			t.Fatalf("create %q returned status %d", title, status)
		}
	}

	soon := now.Add(24 * time.Hour)
	sooner := now.Add(2 * time.Hour)
	far := now.Add(30 * 24 * time.Hour)
	create("due tomorrow", &soon, false)
	create("due in two hours", &sooner, false)
	create("due next month", &far, false)
	create("no due date", nil, false)
	create("already done", &sooner, true)

	var tasks []model.Task
	status := doJSON(t, ts, http.MethodGet, "/api/v1/tasks/upcoming?days=7", token, nil, &tasks)
	if status != http.StatusOK {
		t.Fatalf("upcoming returned status %d", status)
	}

	if len(tasks) != 2 {
		t.Fatalf("expected 2 upcoming tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "due in two hours" || tasks[1].Title != "due tomorrow" {
		t.Errorf("expected soonest-first order, got %q then %q", tasks[0].Title, tasks[1].Title)
	}

	if status := doJSON(t, ts, http.MethodGet, "/api/v1/tasks/upcoming?days=0", token, nil, nil); status != http.StatusBadRequest {
		t.Errorf("expected status 400 for days=0, got %d", status)
	}
}

func TestListTasksByCategory(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "bycat@example.com")

	var cats []model.Category
	doJSON(t, ts, http.MethodGet, "/api/v1/categories", token, nil, &cats)
	work := cats[len(cats)-1] // "Work" sorts last among the seeded names

	doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "In category", "category_id": work.ID,
	}, nil)
	doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "Uncategorized",
	}, nil)

	var tasks []model.Task
	doJSON(t, ts, http.MethodGet, "/api/v1/tasks?category_id="+work.ID, token, nil, &tasks)
	if len(tasks) != 1 || tasks[0].Title != "In category" {
		t.Errorf("expected only the categorized task, got %+v", tasks)
	}
}

func TestCategoryDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	alice := registerUser(t, ts, "alice2@example.com")
	bob := registerUser(t, ts, "bob2@example.com")

	status := doJSON(t, ts, http.MethodPost, "/api/v1/categories", alice, map[string]string{
		"name": "Errands",
	}, nil)
	if status != http.StatusCreated {
		t.Fatalf("create category returned status %d", status)
	}

	// Same owner, case-insensitive duplicate
	status = doJSON(t, ts, http.MethodPost, "/api/v1/categories", alice, map[string]string{
		"name": "errands",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate name, got %d", status)
	}

	// Different owner may reuse the name
	status = doJSON(t, ts, http.MethodPost, "/api/v1/categories", bob, map[string]string{
		"name": "Errands",
	}, nil)
	if status != http.StatusCreated {
		t.Errorf("expected status 201 for another owner, got %d", status)
	}
}

func TestCategoryDeleteDetachesTasks(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "detach@example.com")

	var cat model.Category
	doJSON(t, ts, http.MethodPost, "/api/v1/categories", token, map[string]string{
		"name": "Doomed",
	}, &cat)

	var task model.Task
	doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
		"title": "Survivor", "category_id": cat.ID,
	}, &task)

	status := doJSON(t, ts, http.MethodDelete, "/api/v1/categories/"+cat.ID, token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("delete category returned status %d", status)
	}

	var after model.Task
	status = doJSON(t, ts, http.MethodGet, "/api/v1/tasks/"+task.ID, token, nil, &after)
	if status != http.StatusOK {
		t.Fatalf("expected task to survive, got status %d", status)
	}
	if after.CategoryID != nil {
		t.Errorf("expected category reference cleared, got %v", *after.CategoryID)
	}
}

func TestCategoryCounts(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "counts@example.com")

	var cats []model.Category
	doJSON(t, ts, http.MethodGet, "/api/v1/categories", token, nil, &cats)

	byName := map[string]string{}
	for _, c := range cats {
		byName[c.Name] = c.ID
	}

	for i := 0; i < 3; i++ {
		doJSON(t, ts, http.MethodPost, "/api/v1/tasks", token, map[string]interface{}{
			"title": fmt.Sprintf("work item %d", i), "category_id": byName["Work"],
		}, nil)
	}

	var counts []model.CategoryWithCount
	status := doJSON(t, ts, http.MethodGet, "/api/v1/categories/counts", token, nil, &counts)
	if status != http.StatusOK {
		t.Fatalf("counts returned status %d", status)
	}
	if len(counts) != 4 {
		t.Fatalf("expected counts for all 4 categories, got %d", len(counts))
	}

	for _, c := range counts {
		want := 0
		if c.Name == "Work" {
			want = 3
		}
		if c.TaskCount != want {
			t.Errorf("category %q: expected count %d, got %d", c.Name, want, c.TaskCount)
		}
	}
}

func TestMagicLinkFlow(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "magic@example.com")

	var linkResp map[string]string
	status := doJSON(t, ts, http.MethodPost, "/api/v1/magic-link", "", map[string]string{
		"email": "magic@example.com",
	}, &linkResp)
	if status != http.StatusOK {
		t.Fatalf("magic link request returned status %d", status)
	}
	if linkResp["token"] == "" {
		t.Fatal("expected a development token in the response")
	}

	var auth authResponse
	status = doJSON(t, ts, http.MethodGet, "/api/v1/magic-link/"+linkResp["token"], "", nil, &auth)
	if status != http.StatusOK {
		t.Fatalf("magic link verify returned status %d", status)
	}
	if auth.Token == "" {
		t.Fatal("expected a session token")
	}

	// Tokens are single-use
	status = doJSON(t, ts, http.MethodGet, "/api/v1/magic-link/"+linkResp["token"], "", nil, nil)
	if status != http.StatusBadRequest {
		t.Errorf("expected status 400 reusing a magic link, got %d", status)
	}

	// Unknown emails are not revealed
	var unknown map[string]string
	status = doJSON(t, ts, http.MethodPost, "/api/v1/magic-link", "", map[string]string{
		"email": "ghost@example.com",
	}, &unknown)
	if status != http.StatusOK {
		t.Errorf("expected status 200 for unknown email, got %d", status)
	}
	if unknown["token"] != "" {
		t.Error("unknown email must not produce a token")
	}
}

func TestProfile(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "profile@example.com")

	var profile model.Profile
	status := doJSON(t, ts, http.MethodGet, "/api/v1/profile", token, nil, &profile)
	if status != http.StatusOK {
		t.Fatalf("get profile returned status %d", status)
	}
	if profile.Email != "profile@example.com" {
		t.Errorf("expected email in profile, got %q", profile.Email)
	}

	var updated model.Profile
	status = doJSON(t, ts, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"display_name": "Pat",
		"avatar_url":   "https://example.com/pat.png",
	}, &updated)
	if status != http.StatusOK {
		t.Fatalf("update profile returned status %d", status)
	}
	if updated.DisplayName != "Pat" || updated.AvatarURL != "https://example.com/pat.png" {
		t.Errorf("unexpected updated profile: %+v", updated)
	}
	if updated.Email != "profile@example.com" {
		t.Errorf("email must be immutable, got %q", updated.Email)
	}
}
