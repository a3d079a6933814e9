package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Recommender produces product recommendations for a user. The engine
// implementation never errors, but the contract allows it so the handler
// can keep its always-200 promise even if a future implementation does.
type Recommender interface {
	Recommendations(ctx context.Context, userID string) ([]string, error)
	FallbackRecommendations(ctx context.Context) []string
}

type recommendationQuery struct {
	UserID string `validate:"required"`
}

// RecommendationResponse is the payload for GET /ml/recommendations.
type RecommendationResponse struct {
	UserID    string   `json:"userId"`
	Items     []string `json:"items"`
	Algorithm string   `json:"algorithm"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// RecommendationHandler handles recommendation requests.
type RecommendationHandler struct {
	svc      Recommender
	validate *validator.Validate
}

func NewRecommendationHandler(svc Recommender) *RecommendationHandler {
	return &RecommendationHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

// GetRecommendations handles GET /ml/recommendations?userId=. It always
// responds 200 for a valid request: if the engine fails, the fallback
// recommendations are served with the error noted in the payload.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	q := recommendationQuery{UserID: r.URL.Query().Get("userId")}
	if err := h.validate.Struct(q); err != nil {
		respondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}

	ctx := r.Context()

	items, err := h.svc.Recommendations(ctx, q.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", q.UserID).Msg("handler: recommendation engine failed, serving fallback")
		respondWithJSON(w, http.StatusOK, RecommendationResponse{
			UserID:    q.UserID,
			Items:     h.svc.FallbackRecommendations(ctx),
			Algorithm: "fallback",
			Error:     err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, RecommendationResponse{
		UserID:    q.UserID,
		Items:     items,
		Algorithm: "rule-based-v1",
		Message:   "Replace with ML model for production",
	})
}
