package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vanthang0312/recipe-app/internal/errors"
)

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, recipeID, userID uint, value int) error {
	args := m.Called(ctx, recipeID, userID, value)
	return args.Error(0)
}

func (m *MockRatingRepository) Aggregate(ctx context.Context, recipeID uint) (float64, int64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) FindValue(ctx context.Context, recipeID, userID uint) (int, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Int(0), args.Error(1)
}

func TestRatingService_Submit_RejectsOutOfRange(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	for _, value := range []int{0, -1, 6, 100} {
		_, err := svc.Submit(ctx, 1, 2, value)
		assert.ErrorIs(t, err, errors.ErrRatingOutOfRange)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingService_Submit_UpsertsAndReturnsMean(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	repo.On("Upsert", ctx, uint(1), uint(2), 4).Return(nil)
	repo.On("Aggregate", ctx, uint(1)).Return(3.6666666, int64(3), nil)

	avg, err := svc.Submit(ctx, 1, 2, 4)

	assert.NoError(t, err)
	assert.Equal(t, "3.7", avg)
	repo.AssertExpectations(t)
}

func TestRatingService_Submit_BoundaryValuesAccepted(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	repo.On("Upsert", ctx, uint(1), uint(2), mock.Anything).Return(nil)
	repo.On("Aggregate", ctx, uint(1)).Return(3.0, int64(2), nil)

	for _, value := range []int{1, 5} {
		_, err := svc.Submit(ctx, 1, 2, value)
		assert.NoError(t, err)
	}
}

func TestRatingService_Summary_NoRatings(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	repo.On("Aggregate", ctx, uint(1)).Return(0.0, int64(0), nil)

	summary, err := svc.Summary(ctx, 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, "0.0", summary.AvgRating)
	assert.Equal(t, int64(0), summary.TotalRatings)
	assert.Equal(t, 0, summary.UserRating)
	repo.AssertNotCalled(t, "FindValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingService_Summary_AnonymousViewerSkipsOwnRating(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	repo.On("Aggregate", ctx, uint(1)).Return(4.25, int64(4), nil)

	summary, err := svc.Summary(ctx, 1, 0)

	assert.NoError(t, err)
	assert.Equal(t, "4.2", summary.AvgRating)
	assert.Equal(t, int64(4), summary.TotalRatings)
	repo.AssertNotCalled(t, "FindValue", mock.Anything, mock.Anything, mock.Anything)
}

func TestRatingService_Summary_IncludesViewerRating(t *testing.T) {
	repo := new(MockRatingRepository)
	svc := NewRatingService(repo, nil)
	ctx := context.Background()

	repo.On("Aggregate", ctx, uint(1)).Return(3.5, int64(2), nil)
	repo.On("FindValue", ctx, uint(1), uint(9)).Return(5, nil)

	summary, err := svc.Summary(ctx, 1, 9)

	assert.NoError(t, err)
	assert.Equal(t, "3.5", summary.AvgRating)
	assert.Equal(t, int64(2), summary.TotalRatings)
	assert.Equal(t, 5, summary.UserRating)
	repo.AssertExpectations(t)
}

func TestFormatAvg(t *testing.T) {
	assert.Equal(t, "0.0", formatAvg(0))
	assert.Equal(t, "3.0", formatAvg(3))
	assert.Equal(t, "4.5", formatAvg(4.5))
	assert.Equal(t, "4.7", formatAvg(4.666))
}
