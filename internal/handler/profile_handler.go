package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/errors"
	"github.com/vanthang0312/recipe-app/internal/service"
	"github.com/vanthang0312/recipe-app/internal/upload"
)

// ProfileHandler handles the signed-in user's own page.
type ProfileHandler struct {
	profileService service.ProfileService
	uploader       upload.Store
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, uploader upload.Store) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, uploader: uploader}
}

// ProfileForm represents the multipart profile edit. Avatar and cover
// arrive as the "avatarFile" and "coverFile" file parts.
type ProfileForm struct {
	Email           string `form:"email" validate:"omitempty,email"`
	NewPassword     string `form:"new_password" validate:"omitempty,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=NewPassword"`
}

// Get godoc
// @Summary Get own profile with own recipes
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	user, recipes, err := h.profileService.Profile(c.Request().Context(), viewer.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":    user,
		"recipes": recipes,
	})
}

// Update godoc
// @Summary Edit own email, password, avatar and cover
// @Tags profile
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	var form ProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.ProfileUpdate{
		Email:       form.Email,
		NewPassword: form.NewPassword,
	}
	if file, ferr := c.FormFile("avatarFile"); ferr == nil && file != nil {
		saved, serr := h.uploader.SaveImage(file, "profile/avatar")
		if serr != nil {
			httpErr := errors.MapErrorToHTTP(serr)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		update.AvatarPath = &saved
	}
	if file, ferr := c.FormFile("coverFile"); ferr == nil && file != nil {
		saved, serr := h.uploader.SaveImage(file, "profile/cover")
		if serr != nil {
			httpErr := errors.MapErrorToHTTP(serr)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		update.CoverPath = &saved
	}

	user, err := h.profileService.UpdateProfile(c.Request().Context(), viewer.ID, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "profile updated",
		"user":    user,
	})
}
