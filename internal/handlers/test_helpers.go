package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarcusPreston/solvetrack/internal/models"
	pkghttp "github.com/MarcusPreston/solvetrack/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithProblemID injects the {id} chi URL parameter into the request context
func WithProblemID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockProblemService implements ProblemService for testing
type MockProblemService struct {
	GetProblemFunc   func(ctx context.Context, problemID int) (*models.Problem, error)
	ListProblemsFunc func(ctx context.Context) ([]*models.Problem, error)
}

func (m *MockProblemService) GetProblem(ctx context.Context, problemID int) (*models.Problem, error) {
	if m.GetProblemFunc != nil {
		return m.GetProblemFunc(ctx, problemID)
	}
	return nil, models.ErrNotFound
}

func (m *MockProblemService) ListProblems(ctx context.Context) ([]*models.Problem, error) {
	if m.ListProblemsFunc != nil {
		return m.ListProblemsFunc(ctx)
	}
	return []*models.Problem{}, nil
}

// MockSubmissionService implements SubmissionService for testing
type MockSubmissionService struct {
	SubmitFunc func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error)
}

func (m *MockSubmissionService) Submit(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, problemID, userName, rawValue)
	}
	return nil, models.ErrInternalServer
}

// MockLeaderboardService implements LeaderboardService for testing
type MockLeaderboardService struct {
	LeaderboardFunc func(ctx context.Context, problemID int) ([]*models.LeaderboardEntry, error)
}

func (m *MockLeaderboardService) Leaderboard(ctx context.Context, problemID int) ([]*models.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, problemID)
	}
	return []*models.LeaderboardEntry{}, nil
}
