package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/service"
)

// AdminHandler handles the moderation endpoints. The router mounts these
// behind the admin guard; handlers only pull the acting admin's id.
type AdminHandler struct {
	moderation service.ModerationService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(moderation service.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// Dashboard godoc
// @Summary Admin overview: recipes, users, counters, audit trail
// @Tags admin
// @Produce json
// @Param page query int false "Recipe page number"
// @Success 200 {object} service.Dashboard
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	dashboard, err := h.moderation.Dashboard(c.Request().Context(), page)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, dashboard)
}

// ApproveRecipe godoc
// @Summary Approve a recipe
// @Tags admin
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/recipes/{id}/approve [post]
func (h *AdminHandler) ApproveRecipe(c echo.Context) error {
	return h.statusAction(c, h.moderation.ApproveRecipe, "recipe approved")
}

// RejectRecipe godoc
// @Summary Reject a recipe
// @Tags admin
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/recipes/{id}/reject [post]
func (h *AdminHandler) RejectRecipe(c echo.Context) error {
	return h.statusAction(c, h.moderation.RejectRecipe, "recipe rejected")
}

// DeleteRecipe godoc
// @Summary Delete any recipe and its dependents
// @Tags admin
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/recipes/{id} [delete]
func (h *AdminHandler) DeleteRecipe(c echo.Context) error {
	return h.statusAction(c, h.moderation.DeleteRecipe, "recipe deleted")
}

// DeleteComment godoc
// @Summary Delete a comment from a feed
// @Tags admin
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/comments/{id} [delete]
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	return h.statusAction(c, h.moderation.DeleteComment, "comment deleted")
}

// ToggleBan godoc
// @Summary Ban or unban a user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/toggle-ban [post]
func (h *AdminHandler) ToggleBan(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	newRole, err := h.moderation.ToggleBan(c.Request().Context(), viewer.ID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "user role updated",
		"role":    newRole,
	})
}

func (h *AdminHandler) statusAction(c echo.Context, action func(ctx context.Context, adminID, id uint) error, message string) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := action(c.Request().Context(), viewer.ID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
