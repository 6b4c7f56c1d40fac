package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DivyanshuSingh0/HabitSphere/internal/model"
	"github.com/DivyanshuSingh0/HabitSphere/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := sqlite.New(db)
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(st))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerUser(t *testing.T, srv *httptest.Server, username string) model.User {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/users", map[string]string{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var u model.User
	decode(t, resp, &u)
	require.NotEmpty(t, u.UserID)
	return u
}

func createHabit(t *testing.T, srv *httptest.Server, userID, name string) model.Habit {
	t.Helper()
	resp := postJSON(t, fmt.Sprintf("%s/api/users/%s/habits", srv.URL, userID), map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var h model.Habit
	decode(t, resp, &h)
	return h
}

// logBackdated posts one entry per day for the last n days, oldest first,
// and returns the final response body.
func logBackdated(t *testing.T, srv *httptest.Server, userID, habitID string, n int) map[string]interface{} {
	t.Helper()
	url := fmt.Sprintf("%s/api/users/%s/habits/%s/entries", srv.URL, userID, habitID)
	var last map[string]interface{}
	for i := n - 1; i >= 0; i-- {
		at := time.Now().UTC().AddDate(0, 0, -i).Format(time.RFC3339)
		resp := postJSON(t, url, map[string]string{"loggedAt": at})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		last = map[string]interface{}{}
		decode(t, resp, &last)
	}
	return last
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "divya")

	// duplicate username conflicts
	resp := postJSON(t, srv.URL+"/api/users", map[string]string{"username": "divya", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// login round trip
	resp = postJSON(t, srv.URL+"/api/login", map[string]string{"username": "divya", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logged model.User
	decode(t, resp, &logged)
	assert.Equal(t, u.UserID, logged.UserID)

	// wrong password
	resp = postJSON(t, srv.URL+"/api/login", map[string]string{"username": "divya", "password": "nope"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// profile carries the welcome badge
	resp, err := http.Get(fmt.Sprintf("%s/api/users/%s/profile", srv.URL, u.UserID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile struct {
		TotalBadges int           `json:"totalBadges"`
		Badges      []model.Badge `json:"badges"`
	}
	decode(t, resp, &profile)
	require.Equal(t, 1, profile.TotalBadges)
	assert.Equal(t, "Welcome!", profile.Badges[0].Name)
}

func TestHabitLifecycle(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "divya")
	h := createHabit(t, srv, u.UserID, "Morning run")

	resp, err := http.Get(fmt.Sprintf("%s/api/users/%s/habits", srv.URL, u.UserID))
	require.NoError(t, err)
	var list []model.Habit
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, h.HabitID, list[0].HabitID)

	// another user may not read it
	other := registerUser(t, srv, "mallory")
	resp, err = http.Get(fmt.Sprintf("%s/api/users/%s/habits/%s", srv.URL, other.UserID, h.HabitID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/users/%s/habits/%s", srv.URL, u.UserID, h.HabitID), nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = http.Get(fmt.Sprintf("%s/api/users/%s/habits/%s", srv.URL, u.UserID, h.HabitID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestStreakAndBadgeOverAPI(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "divya")
	h := createHabit(t, srv, u.UserID, "Meditate")

	last := logBackdated(t, srv, u.UserID, h.HabitID, 7)
	assert.Equal(t, float64(7), last["currentStreak"])

	newBadges, ok := last["newBadges"].([]interface{})
	require.True(t, ok, "newBadges missing: %v", last)
	require.Len(t, newBadges, 1)
	badge := newBadges[0].(map[string]interface{})
	assert.Equal(t, "Week Warrior", badge["name"])

	resp, err := http.Get(fmt.Sprintf("%s/api/users/%s/badges", srv.URL, u.UserID))
	require.NoError(t, err)
	var badges []model.Badge
	decode(t, resp, &badges)
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "Week Warrior")
	assert.Contains(t, names, "Welcome!")
}

func TestPredictOverAPI(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "divya")
	h := createHabit(t, srv, u.UserID, "Read")
	url := fmt.Sprintf("%s/api/users/%s/habits/%s/predict", srv.URL, u.UserID, h.HabitID)

	resp, err := http.Get(url)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp, &out)
	assert.Equal(t, "insufficient_data", out["status"])
	assert.NotContains(t, out, "probability")

	logBackdated(t, srv, u.UserID, h.HabitID, 10)
	resp, err = http.Get(url)
	require.NoError(t, err)
	decode(t, resp, &out)
	require.Equal(t, "ok", out["status"])
	prob, ok := out["probability"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, prob, 0.0)
	assert.LessOrEqual(t, prob, 1.0)
	assert.NotEmpty(t, out["prediction"])
}

func TestAnalyticsOverAPI(t *testing.T) {
	srv := newTestServer(t)
	u := registerUser(t, srv, "divya")
	h := createHabit(t, srv, u.UserID, "Stretch")
	logBackdated(t, srv, u.UserID, h.HabitID, 3)

	resp, err := http.Get(fmt.Sprintf("%s/api/users/%s/habits/%s/analytics", srv.URL, u.UserID, h.HabitID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		TotalEntries  int            `json:"totalEntries"`
		CurrentStreak int            `json:"currentStreak"`
		DailyCounts   map[string]int `json:"dailyCounts"`
		WeeklyCounts  map[string]int `json:"weeklyCounts"`
	}
	decode(t, resp, &report)
	assert.Equal(t, 3, report.TotalEntries)
	assert.Equal(t, 3, report.CurrentStreak)
	assert.Len(t, report.DailyCounts, 30)
	assert.Len(t, report.WeeklyCounts, 12)
}

func TestValidationErrorsOverAPI(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", map[string]string{"username": "Bad Name", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	u := registerUser(t, srv, "divya")
	resp = postJSON(t, fmt.Sprintf("%s/api/users/%s/habits", srv.URL, u.UserID), map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
