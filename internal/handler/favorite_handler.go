package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/service"
)

// FavoriteHandler handles the favorites endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Favorite godoc
// @Summary Add a recipe to favorites (idempotent)
// @Tags favorites
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Router /recipes/{id}/favorite [post]
func (h *FavoriteHandler) Favorite(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.favoriteService.Favorite(c.Request().Context(), viewer.ID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "added to favorites"})
}

// Unfavorite godoc
// @Summary Remove a recipe from favorites
// @Tags favorites
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Router /recipes/{id}/favorite [delete]
func (h *FavoriteHandler) Unfavorite(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.favoriteService.Unfavorite(c.Request().Context(), viewer.ID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "removed from favorites"})
}

// List godoc
// @Summary List the viewer's favorite recipes
// @Tags favorites
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	recipes, err := h.favoriteService.List(c.Request().Context(), viewer.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"favorites": recipes})
}
