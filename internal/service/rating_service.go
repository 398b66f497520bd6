package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vanthang0312/recipe-app/internal/cache"
	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/repository"
)

const ratingCacheTTL = 1 * time.Minute

// RatingSummary is the aggregate a recipe page shows.
type RatingSummary struct {
	AvgRating    string `json:"avgRating"`
	TotalRatings int64  `json:"totalRatings"`
	UserRating   int    `json:"userRating"`
}

// RatingService maintains at most one rating per (user, recipe) and exposes
// the mean formatted to one decimal.
type RatingService interface {
	Submit(ctx context.Context, recipeID, userID uint, value int) (string, error)
	Summary(ctx context.Context, recipeID, viewerID uint) (*RatingSummary, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewRatingService builds a RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, cache *cache.Client) RatingService {
	return &ratingService{ratingRepo: ratingRepo, cache: cache}
}

func (s *ratingService) cacheKey(recipeID uint) string {
	return fmt.Sprintf("rating_summary:%d", recipeID)
}

// Submit upserts the caller's rating and returns the recomputed mean. The
// aggregate read runs outside the upsert's transaction, so under concurrent
// raters the returned mean may already include a later write; accepted
// weak-consistency tradeoff.
func (s *ratingService) Submit(ctx context.Context, recipeID, userID uint, value int) (string, error) {
	if value < 1 || value > 5 {
		return "", errors.ErrRatingOutOfRange
	}

	if err := s.ratingRepo.Upsert(ctx, recipeID, userID, value); err != nil {
		return "", fmt.Errorf("upsert rating: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(recipeID))

	avg, _, err := s.ratingRepo.Aggregate(ctx, recipeID)
	if err != nil {
		return "", fmt.Errorf("aggregate ratings: %w", err)
	}
	return formatAvg(avg), nil
}

// Summary returns mean, count and the viewer's own rating (0 for anonymous
// viewers or no rating). The mean/count pair is cached briefly; the
// viewer's own value is always read fresh.
func (s *ratingService) Summary(ctx context.Context, recipeID, viewerID uint) (*RatingSummary, error) {
	summary := &RatingSummary{AvgRating: "0.0"}

	type aggregate struct {
		Avg   float64 `json:"avg"`
		Count int64   `json:"count"`
	}

	var agg aggregate
	cached := false
	if data, _ := s.cache.Get(ctx, s.cacheKey(recipeID)); data != nil {
		if err := json.Unmarshal(data, &agg); err == nil {
			cached = true
		}
	}
	if !cached {
		avg, count, err := s.ratingRepo.Aggregate(ctx, recipeID)
		if err != nil {
			return nil, fmt.Errorf("aggregate ratings: %w", err)
		}
		agg = aggregate{Avg: avg, Count: count}
		if payload, err := json.Marshal(agg); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(recipeID), payload, ratingCacheTTL)
		}
	}

	summary.AvgRating = formatAvg(agg.Avg)
	summary.TotalRatings = agg.Count

	if viewerID != 0 {
		own, err := s.ratingRepo.FindValue(ctx, recipeID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("find own rating: %w", err)
		}
		summary.UserRating = own
	}
	return summary, nil
}

// formatAvg renders the mean to one decimal place; zero ratings reads "0.0".
func formatAvg(avg float64) string {
	return fmt.Sprintf("%.1f", avg)
}
