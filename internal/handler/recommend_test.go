package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRecommender struct {
	recommendationsFunc func(ctx context.Context, userID string) ([]string, error)
	fallbackFunc        func(ctx context.Context) []string
}

func (m *mockRecommender) Recommendations(ctx context.Context, userID string) ([]string, error) {
	return m.recommendationsFunc(ctx, userID)
}

func (m *mockRecommender) FallbackRecommendations(ctx context.Context) []string {
	return m.fallbackFunc(ctx)
}

func TestRecommendationHandler_GetRecommendations(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		recommendations func(ctx context.Context, userID string) ([]string, error)
		fallback        func(ctx context.Context) []string
		expectedStatus  int
		expectedBody    RecommendationResponse
	}{
		{
			name:   "success",
			target: "/ml/recommendations?userId=user-1",
			recommendations: func(ctx context.Context, userID string) ([]string, error) {
				assert.Equal(t, "user-1", userID)
				return []string{"p-1", "p-2", "p-3", "p-4"}, nil
			},
			fallback:       func(ctx context.Context) []string { return nil },
			expectedStatus: http.StatusOK,
			expectedBody: RecommendationResponse{
				UserID:    "user-1",
				Items:     []string{"p-1", "p-2", "p-3", "p-4"},
				Algorithm: "rule-based-v1",
				Message:   "Replace with ML model for production",
			},
		},
		{
			name:   "engine_error_serves_fallback_with_200",
			target: "/ml/recommendations?userId=user-1",
			recommendations: func(ctx context.Context, userID string) ([]string, error) {
				return nil, errors.New("boom")
			},
			fallback: func(ctx context.Context) []string {
				return []string{"mock-1", "mock-2", "mock-3", "mock-4"}
			},
			expectedStatus: http.StatusOK,
			expectedBody: RecommendationResponse{
				UserID:    "user-1",
				Items:     []string{"mock-1", "mock-2", "mock-3", "mock-4"},
				Algorithm: "fallback",
				Error:     "boom",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockRecommender{
				recommendationsFunc: tt.recommendations,
				fallbackFunc:        tt.fallback,
			}

			handler := NewRecommendationHandler(mockSvc)
			r := chi.NewRouter()
			r.Get("/ml/recommendations", handler.GetRecommendations)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var got RecommendationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.expectedBody, got)
		})
	}
}

func TestRecommendationHandler_MissingUserID(t *testing.T) {
	handler := NewRecommendationHandler(&mockRecommender{
		recommendationsFunc: func(ctx context.Context, userID string) ([]string, error) {
			t.Fatal("engine must not be called without a userId")
			return nil, nil
		},
		fallbackFunc: func(ctx context.Context) []string { return nil },
	})

	r := chi.NewRouter()
	r.Get("/ml/recommendations", handler.GetRecommendations)

	req := httptest.NewRequest(http.MethodGet, "/ml/recommendations", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, w.Body.String())
}
