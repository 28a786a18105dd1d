package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface on top of the order use cases.
// Lifecycle commands answer with the order as read back after commit.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	completeOrderHandler commands.CompleteOrderCommandHandler
	deleteOrderHandler   commands.DeleteOrderCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		completeOrderHandler:   completeOrderHandler,
		deleteOrderHandler:     deleteOrderHandler,
		getOrderHandler:        getOrderHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		logger:                 logger.With("component", "http"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListActiveOrders handles GET /api/orders.
func (s *Server) ListActiveOrders(ctx echo.Context) error {
	views, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.writeError(ctx, "", err)
	}

	response := make([]servers.Order, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, commands.CreateOrderInput{
		ProductName:     body.ProductName,
		ProductPrice:    body.ProductPrice,
		ProductQuantity: body.ProductQuantity,
		CustomerID:      body.CustomerID,
		SupplierID:      body.SupplierID,
	})
	if err != nil {
		return s.writeError(ctx, "", err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, "", err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetOrder handles GET /api/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return notFound(ctx, id)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// CancelOrder handles PUT /api/orders/cancel/{id}.
func (s *Server) CancelOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return notFound(ctx, id)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, id, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, id, err)
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// CompleteOrder handles PUT /api/orders/complete/{id}. Completion happens
// later, so a successful request answers 202 with the order in completing.
func (s *Server) CompleteOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return notFound(ctx, id)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, id, err)
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, id, err)
	}

	return s.respondWithOrder(ctx, http.StatusAccepted, orderID)
}

// DeleteOrder handles DELETE /api/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id string) error {
	orderID, err := kernel.UUIDFromString(id)
	if err != nil {
		return notFound(ctx, id)
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, id, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, id, err)
	}

	return ctx.JSON(http.StatusOK, servers.DeletedOrder{
		Id:      orderID.String(),
		Message: fmt.Sprintf("Order with id %s deleted", orderID),
	})
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, orderID.String(), err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, orderID.String(), err)
	}

	return ctx.JSON(status, toOrderResponse(view))
}

// writeError maps use case failures to responses. id is the order id as the
// client sent it, used in not-found messages.
func (s *Server) writeError(ctx echo.Context, id string, err error) error {
	var validationErr *errs.ValidationError
	var conflictErr *errs.StateConflictError

	switch {
	case errors.As(err, &validationErr):
		fields := make([]servers.FieldError, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, servers.FieldError{Field: f.Field, Message: f.Error()})
		}
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: validationErr.Error(),
			Errors:  fields,
		})

	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, id)

	case errors.As(err, &conflictErr):
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: conflictMessage(conflictErr),
		})

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})

	case errors.Is(err, context.Canceled):
		return ctx.NoContent(StatusClientClosedRequest)

	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.String("error", err.Error()))
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

// StatusClientClosedRequest is the nginx convention for a client that went away.
const StatusClientClosedRequest = 499

func notFound(ctx echo.Context, id string) error {
	return ctx.JSON(http.StatusNotFound, servers.Error{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("order with id %s was not found", id),
	})
}

// conflictMessage names the state that blocked the transition, e.g.
// "order with id ... cannot be canceled: order already completed".
func conflictMessage(err *errs.StateConflictError) string {
	msg := fmt.Sprintf("%s with id %v %s", err.ParamName, err.ID, err.Reason)
	if err.Cause != nil {
		msg += ": " + err.Cause.Error()
	}
	return msg
}

func toOrderResponse(view queries.OrderReadModel) servers.Order {
	return servers.Order{
		Id:              view.ID.Bytes(),
		ProductName:     view.ProductName,
		ProductPrice:    view.ProductPrice.InexactFloat64(),
		ProductQuantity: view.ProductQuantity,
		CustomerID:      view.CustomerID,
		SupplierID:      view.SupplierID,
		Status:          servers.OrderStatus(view.Status.String()),
		Canceled:        view.Canceled,
		Completed:       view.Completed,
		CreationDate:    view.CreationDate,
		CompletionDate:  view.CompletionDate,
		CompletionDueAt: view.CompletionDueAt,
	}
}
