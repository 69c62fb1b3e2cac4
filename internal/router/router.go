package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/logger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Post     *handler.PostHandler
	Comment  *handler.CommentHandler
	Upload   *handler.UploadHandler
}

// Route is one entry of the route table. Every route declares its policy and
// the guard is applied from it.
type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
	Policy  auth.Policy
	Owner   auth.OwnerResolver
}

// Routes returns the route table. With enforceOwnership off, delete-post and
// the authoring routes stay open.
func Routes(h Handlers, enforceOwnership bool) []Route {
	authoring := auth.Public
	deletePost := auth.Public
	if enforceOwnership {
		authoring = auth.Authenticated
		deletePost = auth.Owner
	}

	return []Route{
		{Method: http.MethodPost, Path: "/users", Handler: h.Auth.Register},
		{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
		{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Policy: auth.Authenticated},
		{Method: http.MethodGet, Path: "/users/:id", Handler: h.User.GetUser},

		{Method: http.MethodPost, Path: "/category", Handler: h.Category.CreateCategory},
		{Method: http.MethodGet, Path: "/category", Handler: h.Category.GetCategory},
		{Method: http.MethodGet, Path: "/list-c", Handler: h.Category.ListCategories},

		{Method: http.MethodPost, Path: "/posts", Handler: h.Post.CreatePost, Policy: authoring},
		{Method: http.MethodGet, Path: "/posts", Handler: h.Post.ListPosts},
		{Method: http.MethodGet, Path: "/posts/:id", Handler: h.Post.GetPost},
		{Method: http.MethodPut, Path: "/posts/:id", Handler: h.Post.UpdatePost, Policy: auth.Owner, Owner: h.Post.OwnerOf},
		{Method: http.MethodDelete, Path: "/posts/:id", Handler: h.Post.DeletePost, Policy: deletePost, Owner: h.Post.OwnerOf},

		{Method: http.MethodPost, Path: "/comments", Handler: h.Comment.CreateComment, Policy: authoring},
		{Method: http.MethodPost, Path: "/upload", Handler: h.Upload.Upload, Policy: authoring},
	}
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, guard *auth.Guard, h Handlers) {
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(e, log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		}))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	for _, r := range Routes(h, cfg.EnforceOwnership) {
		e.Add(r.Method, r.Path, r.Handler, guard.Middleware(r.Policy, r.Owner)...)
	}
}

// errorHandler logs unexpected failures before echo writes the response.
// Errors that are not already *echo.HTTPError leave the process as a generic 500.
func errorHandler(e *echo.Echo, log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if _, ok := err.(*echo.HTTPError); !ok {
			logger.FromContext(log, c).Error("unhandled error",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			httpErr := errors.MapErrorToHTTP(err)
			err = echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
