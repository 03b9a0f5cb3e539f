package api

import (
	"alcyxob/physio-app/internal/domain"
	"alcyxob/physio-app/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// --- mock services ---

var _ service.SessionService = (*mockSessionService)(nil)

type mockSessionService struct {
	CreateSessionFunc func(ctx context.Context, cmd domain.CreateSessionCommand) (*domain.Session, error)
	GetSessionFunc    func(ctx context.Context, userID string, sessionID int64) (*domain.Session, error)
	ListSessionsFunc  func(ctx context.Context, userID string) ([]domain.Session, error)
}

func (m *mockSessionService) CreateSession(ctx context.Context, cmd domain.CreateSessionCommand) (*domain.Session, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, cmd)
	}
	return nil, errors.New("CreateSessionFunc not implemented in mock")
}

func (m *mockSessionService) GetSession(ctx context.Context, userID string, sessionID int64) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, userID, sessionID)
	}
	return nil, errors.New("GetSessionFunc not implemented in mock")
}

func (m *mockSessionService) ListSessions(ctx context.Context, userID string) ([]domain.Session, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx, userID)
	}
	return []domain.Session{}, nil
}

var _ service.CatalogService = (*mockCatalogService)(nil)

type mockCatalogService struct {
	ListBodyPartsFunc   func(ctx context.Context) ([]domain.BodyPart, error)
	ListMuscleTestsFunc func(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error)
	ListExercisesFunc   func(ctx context.Context, muscleTestID int64) ([]domain.Exercise, error)
}

func (m *mockCatalogService) ListBodyParts(ctx context.Context) ([]domain.BodyPart, error) {
	if m.ListBodyPartsFunc != nil {
		return m.ListBodyPartsFunc(ctx)
	}
	return []domain.BodyPart{}, nil
}

func (m *mockCatalogService) ListMuscleTests(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error) {
	if m.ListMuscleTestsFunc != nil {
		return m.ListMuscleTestsFunc(ctx, bodyPartID)
	}
	return []domain.MuscleTest{}, nil
}

func (m *mockCatalogService) ListExercises(ctx context.Context, muscleTestID int64) ([]domain.Exercise, error) {
	if m.ListExercisesFunc != nil {
		return m.ListExercisesFunc(ctx, muscleTestID)
	}
	return []domain.Exercise{}, nil
}

// --- helpers ---

func newTestRouter(sessions service.SessionService, catalog service.CatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, testSecret, sessions, catalog, prometheus.NewRegistry())
	return router
}

func signToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// --- tests ---

func TestCreateSession_Created(t *testing.T) {
	var got domain.CreateSessionCommand
	sessions := &mockSessionService{
		CreateSessionFunc: func(ctx context.Context, cmd domain.CreateSessionCommand) (*domain.Session, error) {
			got = cmd
			return &domain.Session{
				ID:         7,
				UserID:     cmd.UserID,
				BodyPartID: cmd.BodyPartID,
				TrainingPlan: domain.TrainingPlan{
					Title:     "Shoulder Rehabilitation Plan",
					Exercises: []domain.PlannedExercise{{ID: 100, Name: "Wall slide", Sets: 2, Reps: 8, RestTimeSeconds: 60}},
				},
				SessionTests: []domain.SessionTest{{ID: 1, SessionID: 7, MuscleTestID: 10, PainIntensity: 8}},
			}, nil
		},
	}
	router := newTestRouter(sessions, &mockCatalogService{})

	body := map[string]any{
		"body_part_id": 1,
		"tests": []map[string]any{
			{"muscle_test_id": 10, "pain_intensity": 8},
			{"muscle_test_id": 11, "pain_intensity": 0},
		},
	}
	w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", signToken(t, "user-1", time.Hour), body)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, []domain.TestRating{{MuscleTestID: 10, PainIntensity: 8}, {MuscleTestID: 11, PainIntensity: 0}}, got.Tests)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "feedback_rating")
	assert.Nil(t, resp["feedback_rating"])
	plan := resp["training_plan"].(map[string]any)
	assert.Equal(t, "Shoulder Rehabilitation Plan", plan["title"])
	exercises := plan["exercises"].([]any)
	assert.EqualValues(t, 60, exercises[0].(map[string]any)["rest_time_seconds"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCreateSession_BindingFailures(t *testing.T) {
	router := newTestRouter(&mockSessionService{}, &mockCatalogService{})
	token := signToken(t, "user-1", time.Hour)

	bodies := map[string]any{
		"empty tests":      map[string]any{"body_part_id": 1, "tests": []any{}},
		"missing pain":     map[string]any{"body_part_id": 1, "tests": []map[string]any{{"muscle_test_id": 10}}},
		"zero body part":   map[string]any{"body_part_id": 0, "tests": []map[string]any{{"muscle_test_id": 10, "pain_intensity": 1}}},
		"string test id":   map[string]any{"body_part_id": 1, "tests": []map[string]any{{"muscle_test_id": "ten", "pain_intensity": 1}}},
		"negative test id": map[string]any{"body_part_id": 1, "tests": []map[string]any{{"muscle_test_id": -3, "pain_intensity": 1}}},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/v1/sessions", token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, codeValidationFailed, decodeError(t, w).Code)
		})
	}
}

func TestCreateSession_ErrorKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.NewError(domain.KindInvalidInput, nil, "invalid muscle tests for body part 1: 42"), http.StatusBadRequest, codeValidationFailed},
		{domain.NewError(domain.KindDisclaimerRequired, nil, "accept the disclaimer"), http.StatusForbidden, codeDisclaimerRequired},
		{domain.NewError(domain.KindNotFound, nil, "body part 9 not found"), http.StatusNotFound, codeNotFound},
		{domain.NewError(domain.KindDataUnavailable, nil, "no exercises available"), http.StatusInternalServerError, codeServerError},
		{domain.NewError(domain.KindGeneratorFailure, errors.New("timeout"), "failed to generate training plan"), http.StatusInternalServerError, codeServerError},
		{domain.NewError(domain.KindPersistence, errors.New("not found in shard"), "failed to create session"), http.StatusInternalServerError, codeServerError},
		{errors.New("something not found"), http.StatusInternalServerError, codeServerError},
	}
	token := signToken(t, "user-1", time.Hour)
	body := map[string]any{"body_part_id": 1, "tests": []map[string]any{{"muscle_test_id": 10, "pain_intensity": 5}}}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			sessions := &mockSessionService{
				CreateSessionFunc: func(ctx context.Context, cmd domain.CreateSessionCommand) (*domain.Session, error) {
					return nil, tt.err
				},
			}
			w := doRequest(t, newTestRouter(sessions, &mockCatalogService{}), http.MethodPost, "/api/v1/sessions", token, body)
			assert.Equal(t, tt.status, w.Code)
			e := decodeError(t, w)
			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, domain.MessageOf(tt.err), e.Message)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(&mockSessionService{}, &mockCatalogService{})

	w := doRequest(t, router, http.MethodGet, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions", signToken(t, "user-1", -time.Minute), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions", signToken(t, "", time.Hour), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions", signToken(t, "user-1", time.Hour), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetSession(t *testing.T) {
	sessions := &mockSessionService{
		GetSessionFunc: func(ctx context.Context, userID string, sessionID int64) (*domain.Session, error) {
			if sessionID != 7 || userID != "user-1" {
				return nil, domain.NewError(domain.KindNotFound, nil, "session %d not found", sessionID)
			}
			return &domain.Session{ID: 7, UserID: userID}, nil
		},
	}
	router := newTestRouter(sessions, &mockCatalogService{})
	token := signToken(t, "user-1", time.Hour)

	w := doRequest(t, router, http.MethodGet, "/api/v1/sessions/7", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]any{}, resp["training_plan"])

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions/8", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/sessions/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogRoutes(t *testing.T) {
	catalog := &mockCatalogService{
		ListBodyPartsFunc: func(ctx context.Context) ([]domain.BodyPart, error) {
			return []domain.BodyPart{{ID: 1, Name: "Shoulder"}}, nil
		},
		ListMuscleTestsFunc: func(ctx context.Context, bodyPartID int64) ([]domain.MuscleTest, error) {
			return nil, domain.NewError(domain.KindNotFound, nil, "body part %d not found", bodyPartID)
		},
		ListExercisesFunc: func(ctx context.Context, muscleTestID int64) ([]domain.Exercise, error) {
			return []domain.Exercise{{ID: 100, MuscleTestID: muscleTestID, Images: []domain.ExerciseImage{{ID: 1, ObjectKey: "secret/key.png", URL: "https://signed"}}}}, nil
		},
	}
	router := newTestRouter(&mockSessionService{}, catalog)
	token := signToken(t, "user-1", time.Hour)

	w := doRequest(t, router, http.MethodGet, "/api/v1/body-parts", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Shoulder"}]`, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/v1/body-parts/5/muscle-tests", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, codeNotFound, decodeError(t, w).Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/muscle-tests/10/exercises", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://signed")
	assert.NotContains(t, w.Body.String(), "secret/key.png")
}

func TestPingAndMetricsArePublic(t *testing.T) {
	router := newTestRouter(&mockSessionService{}, &mockCatalogService{})

	w := doRequest(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
