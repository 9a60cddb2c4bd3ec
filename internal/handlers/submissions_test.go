package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MarcusPreston/solvetrack/internal/handlers"
	"github.com/MarcusPreston/solvetrack/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSubmitSolution_Success(t *testing.T) {
	submittedAt := time.Date(2022, 7, 4, 8, 0, 0, 0, time.UTC)

	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			return &models.Attempt{
				ID:                "attempt-123",
				ProblemID:         problemID,
				UserName:          userName,
				DateTime:          submittedAt,
				AttemptValue:      "42",
				AttemptSuccessful: true,
			}, nil
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "  42  ",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	var resp handlers.AttemptResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, 42, resp.ProblemID)
	assert.Equal(t, "Alice", resp.UserName)
	assert.Equal(t, "42", resp.AttemptValue)
	assert.True(t, resp.AttemptSuccessful)
	assert.Equal(t, submittedAt.Format(time.RFC3339), resp.DateTime)
}

func TestSubmitSolution_IncorrectAnswerStillCreated(t *testing.T) {
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			return &models.Attempt{
				ID:                "attempt-124",
				ProblemID:         problemID,
				UserName:          userName,
				DateTime:          time.Now(),
				AttemptValue:      "999",
				AttemptSuccessful: false,
			}, nil
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "999",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	var resp handlers.AttemptResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.False(t, resp.AttemptSuccessful)
}

func TestSubmitSolution_MalformedProblemID(t *testing.T) {
	serviceCalled := false
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			serviceCalled = true
			return nil, nil
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/abc/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "42",
	})
	req = handlers.WithProblemID(req, "abc")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
	assert.False(t, serviceCalled)
}

func TestSubmitSolution_ShortUserName(t *testing.T) {
	serviceCalled := false
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			serviceCalled = true
			return nil, nil
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName:      "Al",
		SolutionValue: "42",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
	assert.False(t, serviceCalled, "DTO validation must reject before the pipeline runs")
}

func TestSubmitSolution_MissingSolutionValue(t *testing.T) {
	handler := handlers.NewSubmissionHandler(&handlers.MockSubmissionService{})
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName: "Alice",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestSubmitSolution_InvalidBody(t *testing.T) {
	handler := handlers.NewSubmissionHandler(&handlers.MockSubmissionService{})
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", "not-an-object")
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestSubmitSolution_ProblemNotFound(t *testing.T) {
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			return nil, models.ErrNotFound
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/999/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "42",
	})
	req = handlers.WithProblemID(req, "999")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 404, "not_found")
}

func TestSubmitSolution_ValidatorFailure(t *testing.T) {
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			return nil, models.ErrValidator
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "42",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 500, "submission_failed")
}

func TestSubmitSolution_StoreFailure(t *testing.T) {
	mockService := &handlers.MockSubmissionService{
		SubmitFunc: func(ctx context.Context, problemID int, userName, rawValue string) (*models.Attempt, error) {
			return nil, models.ErrInternalServer
		},
	}

	handler := handlers.NewSubmissionHandler(mockService)
	req := handlers.NewTestRequest(t, "POST", "/api/problems/42/solution", handlers.SubmitSolutionRequest{
		UserName:      "Alice",
		SolutionValue: "42",
	})
	req = handlers.WithProblemID(req, "42")

	w := httptest.NewRecorder()
	handler.SubmitSolution(w, req)

	handlers.AssertErrorResponse(t, w, 500, "submission_failed")
}
