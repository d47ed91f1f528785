package http

import (
	"errors"
	"net/http"
	"strings"

	"cafe/internal/core/domain/model/access"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

const (
	// UserLoginHeader carries the login of the person at the till.
	UserLoginHeader = "X-User-Login"
	callerKey       = "caller"
)

// CallerMiddleware resolves the caller's role through the user directory. Requests
// without a known login are rejected with 401.
func CallerMiddleware(users ports.UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			login := strings.TrimSpace(ctx.Request().Header.Get(UserLoginHeader))
			if login == "" {
				return unauthorized(ctx, "missing "+UserLoginHeader+" header")
			}

			role, err := users.RoleOf(ctx.Request().Context(), login)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return unauthorized(ctx, "unknown user "+login)
			}
			if err != nil {
				return ctx.JSON(statusOf(err), errorResponse{Code: statusOf(err), Message: http.StatusText(statusOf(err))})
			}

			caller, err := access.NewCaller(login, role)
			if err != nil {
				return unauthorized(ctx, err.Error())
			}

			ctx.Set(callerKey, caller)
			return next(ctx)
		}
	}
}

func callerFrom(ctx echo.Context) (access.Caller, bool) {
	caller, ok := ctx.Get(callerKey).(access.Caller)
	return caller, ok
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, errorResponse{Code: http.StatusUnauthorized, Message: message})
}

// LoadOpenAPI parses and validates the OpenAPI document.
func LoadOpenAPI(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenAPIValidator rejects requests that do not match doc with 400. Requests the document
// has no operation for, such as GET /health, pass through to echo's router.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
					MultiError:         false,
				},
			}
			if validationErr := openapi3filter.ValidateRequest(req.Context(), input); validationErr != nil {
				return badRequest(ctx, validationErr.Error())
			}

			return next(ctx)
		}
	}, nil
}
