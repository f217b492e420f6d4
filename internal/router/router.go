package router

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"whiterabbit/internal/auth"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/handler"
	"whiterabbit/internal/logging"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Post     *handler.PostHandler
	Comment  *handler.CommentHandler
	Todoline *handler.TodolineHandler
}

// TokenValidator checks access tokens for the secured group.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether an access token was revoked on logout.
type RevocationChecker interface {
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *zerolog.Logger,
	tokens TokenValidator,
	revoked RevocationChecker,
	h Handlers,
) error {
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	v, err := NewValidator()
	if err != nil {
		return err
	}
	e.Validator = v

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/register", h.Auth.Register)
	api.POST("/register/activation", h.Auth.Activate)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	api.GET("/post", h.Post.List)
	api.GET("/post/:id", h.Post.Get)
	api.GET("/comment", h.Comment.List)
	api.GET("/comment/:id", h.Comment.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", JWTMiddleware(tokens, revoked))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.Auth.Me)

	secured.POST("/post", h.Post.Create)
	secured.PUT("/post/:id", h.Post.Update)
	secured.PATCH("/post/:id", h.Post.Update)
	secured.DELETE("/post/:id", h.Post.Delete)

	secured.POST("/comment", h.Comment.Create)
	secured.PUT("/comment/:id", h.Comment.Update)
	secured.PATCH("/comment/:id", h.Comment.Update)
	secured.DELETE("/comment/:id", h.Comment.Delete)

	secured.GET("/todoline", h.Todoline.List)
	secured.GET("/todoline/:id", h.Todoline.Get)
	secured.POST("/todoline", h.Todoline.Create)
	secured.PUT("/todoline/:id", h.Todoline.Update)
	secured.PATCH("/todoline/:id", h.Todoline.Update)
	secured.DELETE("/todoline/:id", h.Todoline.Delete)

	return nil
}

var errTokenRevoked = errors.New("token has been revoked")

// JWTMiddleware authenticates Bearer access tokens and stores their
// *auth.Claims under handler.ContextKeyClaims.
func JWTMiddleware(tokens TokenValidator, revoked RevocationChecker) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			if claims.ID != "" {
				if blacklisted, _ := revoked.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); blacklisted {
					return nil, errTokenRevoked
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			}).SetInternal(err)
		},
	})
}
