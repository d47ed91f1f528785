// Package http is the REST front end of the order core.
//
// Every /api/v1 request carries the caller's login in the X-User-Login header; the
// role comes from the user directory. Requests are checked against the embedded
// OpenAPI document before they reach a handler, and error kinds map to statuses:
// invalid input 400, forbidden 403, unknown order 404, closed order 409, unknown menu
// item 422, locked item 423, storage or allocation failure 503.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type (
	placeFirstItemHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceFirstItemCommand) (commands.PlaceFirstItemResult, error)
	}
	addItemHandler interface {
		Handle(ctx context.Context, cmd commands.AddItemToOpenOrderCommand) (kernel.Money, error)
	}
	recomputeTotalHandler interface {
		Handle(ctx context.Context, cmd commands.RecomputeTotalCommand) (kernel.Money, error)
	}
	setPaymentStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetPaymentStatusCommand) error
	}
	setItemStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetItemStatusCommand) error
	}
	setItemCommentHandler interface {
		Handle(ctx context.Context, cmd commands.SetItemCommentCommand) error
	}
	orderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.OrderView, error)
	}
	orderStatusHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusQuery) ([]queries.LineItemView, error)
	}
	openOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.OrderView, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	PlaceFirstItem   placeFirstItemHandler
	AddItem          addItemHandler
	RecomputeTotal   recomputeTotalHandler
	SetPaymentStatus setPaymentStatusHandler
	SetItemStatus    setItemStatusHandler
	SetItemComment   setItemCommentHandler
	OrderHistory     orderHistoryHandler
	OrderStatus      orderStatusHandler
	OpenOrders       openOrdersHandler
}

// Server handles HTTP requests and coordinates them with the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// PlaceFirstItem handles POST /api/v1/orders.
func (s *Server) PlaceFirstItem(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}

	var body placeOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	owner := body.Owner
	if owner == "" {
		owner = caller.Login()
	}

	cmd, err := commands.NewPlaceFirstItemCommand(caller, owner, body.Item)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.handlers.PlaceFirstItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderTotalResponse{ID: result.OrderID.Int64(), Total: result.Total.String()})
}

// AddItemToOpenOrder handles POST /api/v1/orders/{id}/items.
func (s *Server) AddItemToOpenOrder(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body addItemRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddItemToOpenOrderCommand(caller, id, body.Item)
	if err != nil {
		return s.writeError(ctx, err)
	}

	total, err := s.handlers.AddItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderTotalResponse{ID: id.Int64(), Total: total.String()})
}

// RecomputeTotal handles POST /api/v1/orders/{id}/total.
func (s *Server) RecomputeTotal(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRecomputeTotalCommand(caller, id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	total, err := s.handlers.RecomputeTotal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderTotalResponse{ID: id.Int64(), Total: total.String()})
}

// SetPaymentStatus handles PUT /api/v1/orders/{id}/payment.
func (s *Server) SetPaymentStatus(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body paymentRequest
	if err = ctx.Bind(&body); err != nil || body.Paid == nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetPaymentStatusCommand(caller, id, *body.Paid)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.SetPaymentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetItemStatus handles PUT /api/v1/orders/{id}/items/status.
func (s *Server) SetItemStatus(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body itemStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseItemStatus(body.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSetItemStatusCommand(caller, id, body.Item, status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.SetItemStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetItemComment handles PUT /api/v1/orders/{id}/items/comment.
func (s *Server) SetItemComment(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body itemCommentRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetItemCommentCommand(caller, id, body.Item, body.Comment)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.handlers.SetItemComment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderStatus handles GET /api/v1/orders/{id}/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}
	id, err := bindOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderStatusQuery(caller, id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	items, err := s.handlers.OrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toLineItemResponses(items))
}

// GetOrderHistory handles GET /api/v1/users/{login}/orders.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}

	var login string
	if err := runtime.BindStyledParameterWithOptions("simple", "login", ctx.Param("login"), &login,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(caller, login)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.OrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	caller, ok := callerFrom(ctx)
	if !ok {
		return unauthorized(ctx, "missing caller")
	}

	maxAgeHours := queries.DefaultOpenOrdersMaxAgeHours
	if err := runtime.BindQueryParameter("form", true, false, "max_age_hours", ctx.QueryParams(), &maxAgeHours); err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOpenOrdersQuery(caller, maxAgeHours)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.OpenOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

func bindOrderID(ctx echo.Context) (order.ID, error) {
	var id int64
	if err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		return 0, err
	}
	return order.NewID(id)
}
