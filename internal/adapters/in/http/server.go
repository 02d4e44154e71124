// Package http exposes the storefront's order operations over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/lifecycle"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/usecases/commands"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/usecases/queries"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the identity of the operator performing a change.
// Requests without it are attributed to DefaultActor.
const (
	ActorHeader  = "X-Actor"
	DefaultActor = "operator"
)

// Server coordinates between HTTP handlers and application use cases.
// Status changes go through the lifecycle coordinator so its local policy
// check and single-in-flight guard apply to API callers too.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler

	getOrdersHandler  queries.GetOrdersByStatusQueryHandler
	getHistoryHandler queries.GetOrderHistoryQueryHandler

	coordinator *lifecycle.Coordinator
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	getOrdersHandler queries.GetOrdersByStatusQueryHandler,
	getHistoryHandler queries.GetOrderHistoryQueryHandler,
	coordinator *lifecycle.Coordinator,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		getOrdersHandler:   getOrdersHandler,
		getHistoryHandler:  getHistoryHandler,
		coordinator:        coordinator,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.PUT("/orders/:id/status", s.ChangeOrderStatus)

	e.GET("/health", s.Health)
}

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLineItem is one line of an order creation request.
type NewLineItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// NewOrderRequest is the body of POST /orders. All amounts are in minor
// units; the subtotal is derived from the line items.
type NewOrderRequest struct {
	Items    []NewLineItem `json:"items"`
	Shipping int64         `json:"shipping"`
	Tax      int64         `json:"tax"`
	Discount int64         `json:"discount"`
}

// OrderResponse is one order in API responses.
type OrderResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	GrandTotal int64  `json:"grand_total"`
}

// HistoryEntryResponse is one audit trail entry, newest first. Current marks
// the entry describing the order's present status.
type HistoryEntryResponse struct {
	Status         string    `json:"status"`
	PreviousStatus *string   `json:"previous_status,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
	Note           string    `json:"note,omitempty"`
	Actor          string    `json:"actor"`
	Current        bool      `json:"current"`
}

// ChangeStatusRequest is the body of PUT /orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ChangeStatusResponse reports the confirmed state after a status change.
type ChangeStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder handles POST /api/v1/orders - places a new pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	items, subtotal, err := itemsFromRequest(req.Items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	totals, err := totalsFromRequest(subtotal, req)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, items, totals)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	return ctx.JSON(http.StatusCreated, OrderResponse{
		ID:         orderID.String(),
		Status:     order.Pending.String(),
		GrandTotal: totals.GrandTotal().Cents(),
	})
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered
// by ?status=.
func (s *Server) GetOrders(ctx echo.Context) error {
	var query queries.GetOrdersByStatusQuery
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Unknown status: " + raw,
			})
		}
		query, err = queries.NewGetOrdersByStatusQuery(status)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid status filter",
			})
		}
	} else {
		query = queries.NewGetAllOrdersQuery()
	}

	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderResponse, len(rows))
	for i, row := range rows {
		response[i] = OrderResponse{
			ID:         row.ID.String(),
			Status:     row.Status.String(),
			GrandTotal: row.GrandTotal,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
// The read goes through the coordinator, warming its cache for later
// status change pre-checks.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	loaded, err := s.coordinator.Load(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:         loaded.ID().String(),
		Status:     loaded.Status().String(),
		GrandTotal: loaded.Totals().GrandTotal().Cents(),
	})
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's audit trail, newest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	entries, err := s.getHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order history",
		})
	}

	response := make([]HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		var previous *string
		if entry.PreviousStatus != nil {
			name := entry.PreviousStatus.String()
			previous = &name
		}
		response[i] = HistoryEntryResponse{
			Status:         entry.Status.String(),
			PreviousStatus: previous,
			ChangedAt:      entry.ChangedAt,
			Note:           entry.Note,
			Actor:          entry.Actor,
			Current:        entry.Current,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles PUT /api/v1/orders/:id/status - requests a
// status transition through the lifecycle coordinator.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	toStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown status: " + req.Status,
		})
	}

	actor := ctx.Request().Header.Get(ActorHeader)
	if actor == "" {
		actor = DefaultActor
	}

	updated, terr := s.coordinator.RequestStatusChange(
		ctx.Request().Context(), id, toStatus, req.Note, actor)
	if terr != nil {
		return ctx.JSON(statusForTransitionError(terr), ErrorResponse{
			Code:    statusForTransitionError(terr),
			Message: terr.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{
		ID:     updated.ID().String(),
		Status: updated.Status().String(),
	})
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// statusForTransitionError maps a failed attempt to an HTTP status.
// Rejections are conflicts with current state; a transport failure means
// the authoritative store could not be reached.
func statusForTransitionError(terr *lifecycle.TransitionError) int {
	switch {
	case terr.IsTransportFailure():
		return http.StatusBadGateway
	case terr.IsServerRejection() && errors.Is(terr.Cause, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusConflict
	}
}

func itemsFromRequest(reqItems []NewLineItem) ([]order.LineItem, kernel.Money, error) {
	items := make([]order.LineItem, 0, len(reqItems))
	subtotal := kernel.Money{}
	for _, reqItem := range reqItems {
		productID, err := kernel.UUIDFromString(reqItem.ProductID)
		if err != nil {
			return nil, kernel.Money{}, err
		}
		unitPrice, err := kernel.NewMoney(reqItem.UnitPrice)
		if err != nil {
			return nil, kernel.Money{}, err
		}
		item, err := order.NewLineItem(productID, reqItem.Quantity, unitPrice)
		if err != nil {
			return nil, kernel.Money{}, err
		}
		items = append(items, item)
		for range reqItem.Quantity {
			subtotal = subtotal.Add(unitPrice)
		}
	}
	return items, subtotal, nil
}

func totalsFromRequest(subtotal kernel.Money, req NewOrderRequest) (order.Totals, error) {
	shipping, err := kernel.NewMoney(req.Shipping)
	if err != nil {
		return order.Totals{}, err
	}
	tax, err := kernel.NewMoney(req.Tax)
	if err != nil {
		return order.Totals{}, err
	}
	discount, err := kernel.NewMoney(req.Discount)
	if err != nil {
		return order.Totals{}, err
	}
	return order.NewTotals(subtotal, shipping, tax, discount)
}
