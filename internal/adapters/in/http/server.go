// Package http exposes the order lifecycle over a JSON API served by echo.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// HealthCheck reports whether a dependency can currently serve requests.
type HealthCheck func(ctx context.Context) error

type namedCheck struct {
	name  string
	check HealthCheck
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	// Command handlers
	createOrderHandler commands.CreateOrderCommandHandler
	editOrderHandler   commands.EditOrderCommandHandler
	payOrderHandler    commands.PayOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	metrics *Metrics
	checks  []namedCheck
	logger  *slog.Logger
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	editOrderHandler commands.EditOrderCommandHandler,
	payOrderHandler commands.PayOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	metrics *Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		editOrderHandler:   editOrderHandler,
		payOrderHandler:    payOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		metrics:            metrics,
		logger:             logger.With("component", "http"),
	}
}

// AddHealthCheck makes /health report 503 while check fails.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.checks = append(s.checks, namedCheck{name: name, check: check})
}

// Register mounts the API on e. Every /api route requires auth and is
// validated against the OpenAPI document, which is also served under /swagger.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) error {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return err
	}
	validate, err := RequestValidator(doc)
	if err != nil {
		return err
	}
	docs, err := swaggerHandler(doc)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		e.Use(s.metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
	e.GET("/health", s.Health)
	e.GET("/swagger/*", docs)

	api := e.Group("/api/v1/orders", auth, validate)
	api.POST("", s.CreateOrder)
	api.GET("", s.ListAllOrders)
	api.GET("/mine", s.ListMyOrders)
	api.GET("/:id", s.GetOrder)
	api.PUT("/:id", s.EditOrder)
	api.DELETE("/:id", s.CancelOrder)
	api.POST("/:id/pay", s.PayOrder)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	for _, c := range s.checks {
		if err := c.check(ctx.Request().Context()); err != nil {
			s.logger.WarnContext(ctx.Request().Context(), "health check failed", "check", c.name, "error", err)
			return ctx.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: fmt.Sprintf("%s: %v", c.name, err),
			})
		}
	}
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return unauthorized(ctx, "Authentication required")
	}

	var body OrderRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewCreateOrderCommand(principal.AccountID, body.toDomain())
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.metrics.transition("create")
	return ctx.JSON(http.StatusCreated, toResponse(view))
}

// ListAllOrders handles GET /api/v1/orders; admins only.
func (s *Server) ListAllOrders(ctx echo.Context) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return unauthorized(ctx, "Authentication required")
	}
	if !principal.IsAdmin() {
		return ctx.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Admin role required"})
	}

	orders, err := s.listOrdersHandler.HandleAll(ctx.Request().Context(), queries.NewListAllOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toResponses(orders))
}

// ListMyOrders handles GET /api/v1/orders/mine.
func (s *Server) ListMyOrders(ctx echo.Context) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return unauthorized(ctx, "Authentication required")
	}

	query, err := queries.NewListOrdersForOwnerQuery(principal.AccountID)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.listOrdersHandler.HandleForOwner(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:id. Only the owner or an admin may read.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return unauthorized(ctx, "Authentication required")
	}

	id, err := orderID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var query queries.GetOrderQuery
	if principal.IsAdmin() {
		query, err = queries.NewGetOrderQuery(id)
	} else {
		query, err = queries.NewGetOwnOrderQuery(id, principal.AccountID)
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toResponse(view))
}

// EditOrder handles PUT /api/v1/orders/:id.
func (s *Server) EditOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body OrderRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewEditOrderCommand(id, body.toDomain())
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.editOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.metrics.transition("edit")
	return ctx.JSON(http.StatusOK, toResponse(view))
}

// PayOrder handles POST /api/v1/orders/:id/pay.
func (s *Server) PayOrder(ctx echo.Context) error {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return unauthorized(ctx, "Authentication required")
	}

	id, err := orderID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPayOrderCommand(id, principal.AccountID)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.payOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	s.metrics.transition("pay")
	return ctx.JSON(http.StatusOK, toResponse(view))
}

// CancelOrder handles DELETE /api/v1/orders/:id.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	s.metrics.transition("cancel")
	return ctx.NoContent(http.StatusNoContent)
}

func orderID(ctx echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}
