package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"cafe/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// openAPIDoc serves the loaded document to the swagger UI.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

// NewRouter builds the echo instance: health check, swagger UI, and the validated,
// caller-aware /api/v1 group.
func NewRouter(server *Server, users ports.UserDirectory, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, openAPIDoc{json: string(docJSON)})
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("component", "http"),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator, CallerMiddleware(users))
	api.POST("/orders", server.PlaceFirstItem)
	api.GET("/orders/open", server.GetOpenOrders)
	api.POST("/orders/:id/items", server.AddItemToOpenOrder)
	api.PUT("/orders/:id/items/status", server.SetItemStatus)
	api.PUT("/orders/:id/items/comment", server.SetItemComment)
	api.PUT("/orders/:id/payment", server.SetPaymentStatus)
	api.POST("/orders/:id/total", server.RecomputeTotal)
	api.GET("/orders/:id/status", server.GetOrderStatus)
	api.GET("/users/:login/orders", server.GetOrderHistory)

	return e, nil
}
