package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
)

// ContextKeyClaims is where the JWT middleware stores the validated claims.
const ContextKeyClaims = "user"

// MessageResponse is returned by operations that have no entity to show.
type MessageResponse struct {
	Message string `json:"message"`
}

// claimsFrom returns the access token claims of a secured request.
func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ContextKeyClaims).(*auth.Claims)
	return claims
}

// actorFrom returns the requesting actor, nil on public routes.
func actorFrom(c echo.Context) *auth.Actor {
	return auth.ActorFromClaims(claimsFrom(c))
}

// bindAndValidate decodes the body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return fail(err)
	}
	return nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// fail turns a service error into an echo HTTP error.
func fail(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	mapped := apperrors.MapErrorToHTTP(err)
	resp := mapped.ToErrorResponse()

	var invalid *apperrors.ValidationError
	if errors.As(err, &invalid) {
		resp.Fields = invalid.Fields
	}
	return echo.NewHTTPError(mapped.StatusCode, resp).SetInternal(err)
}
