package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vanthang0312/recipe-app/internal/auth"
	"github.com/vanthang0312/recipe-app/internal/authz"
)

// CurrentClaims returns the session claims the auth middleware stored, or
// nil for anonymous requests.
func CurrentClaims(c echo.Context) *auth.SessionClaims {
	claims, ok := c.Get("user").(*auth.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentViewer maps the session claims to the gate's viewer identity.
// Returns nil for anonymous requests.
func CurrentViewer(c echo.Context) *authz.Viewer {
	claims := CurrentClaims(c)
	if claims == nil {
		return nil
	}
	return &authz.Viewer{
		ID:                 claims.UserID,
		Username:           claims.Username,
		Role:               claims.Role,
		MustChangePassword: claims.MustChangePassword,
	}
}

// requireViewer returns the viewer or a 401. Secured routes are already
// behind the JWT middleware; this guards against wiring mistakes.
func requireViewer(c echo.Context) (*authz.Viewer, error) {
	v := CurrentViewer(c)
	if v == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return v, nil
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
