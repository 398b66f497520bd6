package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/model"
	"github.com/vanthang0312/recipe-app/internal/service"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// RecipeHandler handles recipe CRUD and the public listing.
type RecipeHandler struct {
	recipeService service.RecipeService
	uploader      upload.Store
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService, uploader upload.Store) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, uploader: uploader}
}

// RecipeForm represents the multipart form fields of a recipe submission.
// The image arrives as the "recipeImage" file part.
type RecipeForm struct {
	Title        string `form:"title" validate:"required"`
	Description  string `form:"description"`
	Video        string `form:"video"`
	Ingredients  string `form:"ingredients" validate:"required"`
	Instructions string `form:"instructions" validate:"required"`
}

// ListResponse represents one page of the public listing.
type ListResponse struct {
	Recipes    []model.Recipe     `json:"recipes"`
	Search     string             `json:"search"`
	Pagination service.Pagination `json:"pagination"`
}

// List godoc
// @Summary List recipes, newest first, with optional search
// @Tags recipes
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page number"
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	search := c.QueryParam("search")

	recipes, pagination, err := h.recipeService.List(c.Request().Context(), search, page)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ListResponse{
		Recipes:    recipes,
		Search:     search,
		Pagination: pagination,
	})
}

// Detail godoc
// @Summary Get one recipe through the visibility gate
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} service.RecipeDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Detail(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.recipeService.Detail(c.Request().Context(), id, CurrentViewer(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, detail)
}

// Create godoc
// @Summary Submit a new recipe (starts pending moderation)
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param recipeImage formData file true "Recipe image"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var form RecipeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("recipeImage")
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrImageRequired)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	imagePath, err := h.uploader.SaveImage(file, "recipe")
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), viewer.ID, recipeInput(form), imagePath)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "recipe submitted and awaiting approval",
		"recipe":  recipe,
	})
}

// Update godoc
// @Summary Edit an owned recipe
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var form RecipeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A replacement image is optional on edit.
	var newImagePath *string
	if file, ferr := c.FormFile("recipeImage"); ferr == nil && file != nil {
		saved, serr := h.uploader.SaveImage(file, "recipe")
		if serr != nil {
			httpErr := errors.MapErrorToHTTP(serr)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		newImagePath = &saved
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), id, viewer.ID, recipeInput(form), newImagePath)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "recipe updated",
		"recipe":  recipe,
	})
}

// Delete godoc
// @Summary Delete an owned recipe and its dependents
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), id, viewer.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "recipe deleted"})
}

func recipeInput(form RecipeForm) service.RecipeInput {
	return service.RecipeInput{
		Title:        form.Title,
		Description:  form.Description,
		Video:        form.Video,
		Ingredients:  form.Ingredients,
		Instructions: form.Instructions,
	}
}
