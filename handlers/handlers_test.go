package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"flexzone/api"
	"flexzone/app"
	"flexzone/config"
	"flexzone/config/setup"
	"flexzone/database"
	"flexzone/models"
	"flexzone/services"
	"flexzone/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodToken = "good-id-token"

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, idToken string) (*models.GoogleUser, error) {
	if idToken != goodToken {
		return nil, services.ErrInvalidToken
	}
	return &models.GoogleUser{ID: "g-1", Email: "ada@example.com", Name: "Ada"}, nil
}

type fakeBackend struct {
	mu       sync.Mutex
	dayPlans []models.RemotePlan
	lastAuth string
}

func (b *fakeBackend) setDayPlans(plans []models.RemotePlan) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dayPlans = plans
}

func (b *fakeBackend) auth() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastAuth = r.Header.Get("Authorization")

	switch r.URL.Path {
	case "/api/auth/google":
		json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-1"})
	case "/plans/day":
		json.NewEncoder(w).Encode(b.dayPlans)
	case "/getWorkouts":
		http.Error(w, "catalog down", http.StatusInternalServerError)
	default:
		http.NotFound(w, r)
	}
}

type testEnv struct {
	fiber   *fiber.App
	app     *app.App
	db      *database.DB
	backend *fakeBackend
	token   string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	config.AppConfig = &config.Config{Env: "test", CORSOrigins: "*"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tmpDir, err := os.MkdirTemp("", "flexzone-handlers-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	db, err := setup.InitDatabase(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := session.NewStore(db.DB, "test-secret")
	require.NoError(t, err)

	backend := &fakeBackend{}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL, store, logger)
	require.NoError(t, err)

	application := app.New(database.NewRepository(db, logger), store, client, fakeVerifier{}, logger)

	fiberApp := setup.NewFiberApp(logger)
	setup.ApplyMiddleware(fiberApp, logger)
	setup.RegisterRoutes(fiberApp, application)

	return &testEnv{fiber: fiberApp, app: application, db: db, backend: backend}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	return e.doWithToken(t, method, path, body, e.token)
}

func (e *testEnv) doWithToken(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp.StatusCode, out
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/auth/google", fiber.Map{"id_token": goodToken})
	require.Equal(t, http.StatusOK, status, body)

	token, ok := body["token"].(string)
	require.True(t, ok, body)
	require.NotEmpty(t, token)
	e.token = token
}

func exerciseNames(t *testing.T, body map[string]any) []string {
	t.Helper()
	list, ok := body["exercises"].([]any)
	require.True(t, ok, body)

	names := make([]string, 0, len(list))
	for _, item := range list {
		names = append(names, item.(map[string]any)["name"].(string))
	}
	return names
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestSessionRequired(t *testing.T) {
	env := setupTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not signed in", body["error"])

	status, body = env.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["authenticated"])

	t.Run("Signed-in device without its token", func(t *testing.T) {
		env := setupTestEnv(t)
		env.signIn(t)

		status, body := env.doWithToken(t, http.MethodGet, "/api/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, false, body["authenticated"])

		status, _ = env.doWithToken(t, http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = env.doWithToken(t, http.MethodPost, "/api/auth/logout", nil, "")
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = env.do(t, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Wrong token", func(t *testing.T) {
		env := setupTestEnv(t)
		env.signIn(t)

		status, _ := env.doWithToken(t, http.MethodGet, "/api/profile", nil, env.token+"x")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Older token is replaced by a new sign-in", func(t *testing.T) {
		env := setupTestEnv(t)
		env.signIn(t)
		first := env.token
		env.signIn(t)

		status, _ := env.doWithToken(t, http.MethodGet, "/api/profile", nil, first)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestSignIn(t *testing.T) {
	t.Run("New user gets starter data", func(t *testing.T) {
		env := setupTestEnv(t)
		env.signIn(t)

		status, body := env.do(t, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["authenticated"])
		assert.Equal(t, "ada@example.com", body["email"])

		status, body = env.do(t, http.MethodGet, "/api/workouts/Monday", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{"Push-Up", "Squat", "Plank"}, exerciseNames(t, body))

		status, body = env.do(t, http.MethodGet, "/api/profile", nil)
		require.Equal(t, http.StatusOK, status)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, database.SeedSkillLevel, profile["skill_level"])
	})

	t.Run("Signing in twice does not reseed", func(t *testing.T) {
		env := setupTestEnv(t)
		env.signIn(t)
		env.signIn(t)

		_, body := env.do(t, http.MethodGet, "/api/workouts/Monday", nil)
		assert.Len(t, exerciseNames(t, body), 3)
	})

	t.Run("Rejected token", func(t *testing.T) {
		env := setupTestEnv(t)

		status, _ := env.do(t, http.MethodPost, "/api/auth/google", fiber.Map{"id_token": "forged"})
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = env.do(t, http.MethodGet, "/api/profile", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("Missing token", func(t *testing.T) {
		env := setupTestEnv(t)

		status, body := env.do(t, http.MethodPost, "/api/auth/google", fiber.Map{})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Validation failed", body["error"])
	})
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)
	env.signIn(t)

	status, _ := env.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodGet, "/api/workouts/Monday", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestWorkoutExercises(t *testing.T) {
	env := setupTestEnv(t)
	env.signIn(t)

	status, body := env.do(t, http.MethodPost, "/api/workouts", fiber.Map{
		"plan_name":     "Leg Day",
		"exercise_name": "Bench Press",
		"day":           "Tuesday",
		"sets":          "4",
		"reps":          8,
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = env.do(t, http.MethodGet, "/api/workouts/Tuesday", nil)
	require.Equal(t, http.StatusOK, status)
	exercises := body["exercises"].([]any)
	require.Len(t, exercises, 1)
	assert.Equal(t, float64(4), exercises[0].(map[string]any)["sets"])

	status, _ = env.do(t, http.MethodPut, "/api/workouts/exercises/Bench%20Press", fiber.Map{"sets": 5, "reps": 5})
	assert.Equal(t, http.StatusOK, status)

	_, body = env.do(t, http.MethodGet, "/api/workouts/Tuesday", nil)
	updated := body["exercises"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(5), updated["sets"])
	assert.Equal(t, float64(5), updated["reps"])

	status, body = env.do(t, http.MethodGet, "/api/workouts", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["plans"], 2)

	status, _ = env.do(t, http.MethodDelete, "/api/workouts/exercises/Bench%20Press", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, "/api/workouts/exercises/Bench%20Press", nil)
	assert.Equal(t, http.StatusNotFound, status)

	t.Run("Invalid input", func(t *testing.T) {
		status, body := env.do(t, http.MethodPost, "/api/workouts", fiber.Map{
			"plan_name":     "Leg Day",
			"exercise_name": "Lunge",
			"day":           "Funday",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, body["details"])

		status, _ = env.do(t, http.MethodGet, "/api/workouts/Funday", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestOnboard(t *testing.T) {
	env := setupTestEnv(t)
	env.signIn(t)

	t.Run("Existing profile is kept", func(t *testing.T) {
		status, body := env.do(t, http.MethodPost, "/api/profile", fiber.Map{
			"heightFeet":   5,
			"heightInches": 11,
			"weight":       70,
			"age":          30,
			"skill_level":  "Beginner",
		})
		require.Equal(t, http.StatusCreated, status, body)
		profile := body["profile"].(map[string]any)
		assert.Equal(t, database.SeedSkillLevel, profile["skill_level"])
	})

	t.Run("Invalid form", func(t *testing.T) {
		status, _ := env.do(t, http.MethodPost, "/api/profile", fiber.Map{
			"heightFeet":   5,
			"heightInches": 12,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Skipped answers are stored as missing", func(t *testing.T) {
		_, err := env.db.Exec(`DELETE FROM profile`)
		require.NoError(t, err)

		status, body := env.do(t, http.MethodPost, "/api/profile", fiber.Map{"skill_level": "Beginner"})
		require.Equal(t, http.StatusCreated, status, body)
		profile := body["profile"].(map[string]any)
		assert.Nil(t, profile["age"])
		assert.Nil(t, profile["weight"])
		assert.Nil(t, profile["height"])

		var age, weight, height sql.NullFloat64
		require.NoError(t, env.db.QueryRow(`SELECT age, weight, height FROM profile`).Scan(&age, &weight, &height))
		assert.False(t, age.Valid)
		assert.False(t, weight.Valid)
		assert.False(t, height.Valid)
	})
}

func TestBackendErrors(t *testing.T) {
	env := setupTestEnv(t)
	env.signIn(t)

	t.Run("Backend failure maps to bad gateway", func(t *testing.T) {
		status, body := env.do(t, http.MethodGet, "/api/catalog?name=squat", nil)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, float64(http.StatusInternalServerError), body["backend_status"])
		assert.Equal(t, "Bearer jwt-1", env.backend.auth())
	})

	t.Run("Day without a plan", func(t *testing.T) {
		env.backend.setDayPlans([]models.RemotePlan{})

		status, _ := env.do(t, http.MethodPut, "/api/plans/Monday/exercises/Squat", fiber.Map{"sets": 3, "reps": 12})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Day plan", func(t *testing.T) {
		env.backend.setDayPlans([]models.RemotePlan{{ID: 7, GoogleID: "g-1", Name: "Push", Day: "Monday"}})

		status, body := env.do(t, http.MethodGet, "/api/plans/Monday", nil)
		require.Equal(t, http.StatusOK, status)
		plan := body["plan"].(map[string]any)
		assert.Equal(t, "Push", plan["name"])
	})
}
