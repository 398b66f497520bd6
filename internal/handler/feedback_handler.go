package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/service"
)

// FeedbackHandler handles the rating and comment endpoints of a recipe.
// Response shapes match what the detail page's scripts consume.
type FeedbackHandler struct {
	ratingService  service.RatingService
	commentService service.CommentService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(ratingService service.RatingService, commentService service.CommentService) *FeedbackHandler {
	return &FeedbackHandler{ratingService: ratingService, commentService: commentService}
}

// RatingRequest represents a rating submission.
type RatingRequest struct {
	Rating int `json:"rating"`
}

// CommentRequest represents a comment submission.
type CommentRequest struct {
	Content string `json:"content"`
}

// RatingCommentsResponse is the combined read payload for a recipe page.
type RatingCommentsResponse struct {
	AvgRating    string                    `json:"avgRating"`
	TotalRatings int64                     `json:"totalRatings"`
	UserRating   int                       `json:"userRating"`
	Comments     []model.CommentWithAuthor `json:"comments"`
}

// GetRatingComments godoc
// @Summary Get rating summary and full comment feed for a recipe
// @Tags feedback
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RatingCommentsResponse
// @Failure 500 {object} map[string]string
// @Router /recipes/{id}/rating-comments [get]
func (h *FeedbackHandler) GetRatingComments(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var viewerID uint
	if v := CurrentViewer(c); v != nil {
		viewerID = v.ID
	}

	summary, err := h.ratingService.Summary(c.Request().Context(), id, viewerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error, try again"})
	}
	comments, err := h.commentService.List(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error, try again"})
	}

	return c.JSON(http.StatusOK, RatingCommentsResponse{
		AvgRating:    summary.AvgRating,
		TotalRatings: summary.TotalRatings,
		UserRating:   summary.UserRating,
		Comments:     comments,
	})
}

// SubmitRating godoc
// @Summary Rate a recipe 1-5; re-rating overwrites the previous value
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body RatingRequest true "Rating value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /recipes/{id}/rating [post]
func (h *FeedbackHandler) SubmitRating(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	avg, err := h.ratingService.Submit(c.Request().Context(), id, viewer.ID, req.Rating)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, map[string]string{"error": httpErr.Message})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"avgRating": avg,
	})
}

// AddComment godoc
// @Summary Comment on a recipe (min 5 characters)
// @Tags feedback
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body CommentRequest true "Comment content"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /recipes/{id}/comment [post]
func (h *FeedbackHandler) AddComment(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	comment, err := h.commentService.Add(c.Request().Context(), id, viewer.ID, req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, map[string]string{"error": httpErr.Message})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"comment": comment,
	})
}
