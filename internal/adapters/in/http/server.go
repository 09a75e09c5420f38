// Package http exposes the courier and order use cases over REST with echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/application/usecases/queries"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/domain/services"
	"lavka/internal/pkg/errs"
	"lavka/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type (
	CreateCouriersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCouriersCommand) ([]*courier.Courier, error)
	}
	CreateOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error)
	}
	CompleteOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrdersCommand) ([]*order.Order, error)
	}
	AssignOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrdersCommand) (services.Assignment, error)
	}
	GetCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetCouriersQuery) (queries.GetCouriersQueryResponse, error)
	}
	GetCourierHandler interface {
		Handle(ctx context.Context, query queries.GetCourierQuery) (queries.CourierResponse, error)
	}
	GetCourierMetaInfoHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetCourierMetaInfoQuery,
		) (queries.GetCourierMetaInfoQueryResponse, error)
	}
	GetCourierAssignmentsHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetCourierAssignmentsQuery,
		) (queries.GetCourierAssignmentsQueryResponse, error)
	}
	GetOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderResponse, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}
)

// HealthCheck reports whether the service dependencies are reachable.
type HealthCheck func(ctx context.Context) error

// Handlers are the use cases behind the routes.
type Handlers struct {
	CreateCouriers        CreateCouriersHandler
	CreateOrders          CreateOrdersHandler
	CompleteOrders        CompleteOrdersHandler
	AssignOrders          AssignOrdersHandler
	GetCouriers           GetCouriersHandler
	GetCourier            GetCourierHandler
	GetCourierMetaInfo    GetCourierMetaInfoHandler
	GetCourierAssignments GetCourierAssignmentsHandler
	GetOrders             GetOrdersHandler
	GetOrder              GetOrderHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	health   HealthCheck
	metrics  *metrics.Collectors
	now      func() time.Time
}

func NewServer(handlers Handlers, health HealthCheck, collectors *metrics.Collectors) *Server {
	return &Server{
		handlers: handlers,
		health:   health,
		metrics:  collectors,
		now:      time.Now,
	}
}

// Ping handles GET /ping.
func (s *Server) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.health != nil {
		if err := s.health(c.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable).SetInternal(err)
		}
	}
	return c.String(http.StatusOK, "Healthy")
}

// CreateCouriers handles POST /couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	if err := allowQuery(c); err != nil {
		return err
	}

	var req CreateCourierRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	drafts := make([]commands.CourierDraft, 0, len(req.Couriers))
	for _, dto := range req.Couriers {
		courierType, err := courier.ParseType(*dto.CourierType)
		if err != nil {
			return badRequest(err)
		}
		hours, err := kernel.ParseTimeWindows(dto.WorkingHours)
		if err != nil {
			return badRequest(err)
		}
		drafts = append(drafts, commands.CourierDraft{
			Type:         courierType,
			Regions:      dto.Regions,
			WorkingHours: hours,
		})
	}

	cmd, err := commands.NewCreateCouriersCommand(drafts)
	if err != nil {
		return badRequest(err)
	}

	created, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := CreateCouriersResponse{Couriers: make([]CourierDto, 0, len(created))}
	for _, cr := range created {
		response.Couriers = append(response.Couriers, toCourierDto(queries.NewCourierResponse(cr)))
	}

	return c.JSON(http.StatusOK, response)
}

// GetCouriers handles GET /couriers?offset&limit.
func (s *Server) GetCouriers(c echo.Context) error {
	if err := allowQuery(c, "offset", "limit"); err != nil {
		return err
	}

	offset, err := queryInt(c, "offset", queries.DefaultOffset)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", queries.DefaultLimit)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCouriersQuery(offset, limit)
	if err != nil {
		return badRequest(err)
	}

	page, err := s.handlers.GetCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := GetCouriersResponse{
		Couriers: make([]CourierDto, 0, len(page.Couriers)),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	for _, cr := range page.Couriers {
		response.Couriers = append(response.Couriers, toCourierDto(cr))
	}

	return c.JSON(http.StatusOK, response)
}

// GetCourier handles GET /couriers/:courier_id.
func (s *Server) GetCourier(c echo.Context) error {
	if err := allowQuery(c); err != nil {
		return err
	}

	id, err := pathID(c, "courier_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return badRequest(err)
	}

	found, err := s.handlers.GetCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourierDto(found))
}

// GetCourierMetaInfo handles GET /couriers/meta-info/:courier_id?startDate&endDate.
func (s *Server) GetCourierMetaInfo(c echo.Context) error {
	if err := allowQuery(c, "startDate", "endDate"); err != nil {
		return err
	}

	id, err := pathID(c, "courier_id")
	if err != nil {
		return err
	}
	start, err := requiredQueryDate(c, "startDate")
	if err != nil {
		return err
	}
	end, err := requiredQueryDate(c, "endDate")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierMetaInfoQuery(id, start, end)
	if err != nil {
		return badRequest(err)
	}

	info, err := s.handlers.GetCourierMetaInfo.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := GetCourierMetaInfoResponse{
		CourierDto: toCourierDto(info.Courier),
		Earnings:   info.Earnings,
		Rating:     info.Rating,
	}
	for _, orderID := range info.Courier.CompletedOrders {
		response.CompletedOrders = append(response.CompletedOrders, orderID.Int64())
	}

	return c.JSON(http.StatusOK, response)
}

// GetCourierAssignments handles GET /couriers/assignments?date&courier_id.
func (s *Server) GetCourierAssignments(c echo.Context) error {
	if err := allowQuery(c, "date", "courier_id"); err != nil {
		return err
	}

	date, err := queryDate(c, "date", s.now())
	if err != nil {
		return err
	}

	courierID, err := queryID(c, "courier_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierAssignmentsQuery(date, courierID)
	if err != nil {
		return badRequest(err)
	}

	assignments, err := s.handlers.GetCourierAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := OrderAssignResponse{
		Date:     assignments.Date.Format(time.DateOnly),
		Couriers: make([]CourierGroupOrders, 0, len(assignments.Couriers)),
	}
	for _, group := range assignments.Couriers {
		response.Couriers = append(response.Couriers, CourierGroupOrders{
			CourierID: group.CourierID.Int64(),
			Orders:    toOrderDtos(group.Orders),
		})
	}

	return c.JSON(http.StatusOK, response)
}

// CreateOrders handles POST /orders.
func (s *Server) CreateOrders(c echo.Context) error {
	if err := allowQuery(c); err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	drafts := make([]commands.OrderDraft, 0, len(req.Orders))
	for _, dto := range req.Orders {
		hours, err := kernel.ParseTimeWindows(dto.DeliveryHours)
		if err != nil {
			return badRequest(err)
		}
		drafts = append(drafts, commands.OrderDraft{
			Weight:        *dto.Weight,
			Region:        *dto.Regions,
			DeliveryHours: hours,
			Cost:          *dto.Cost,
		})
	}

	cmd, err := commands.NewCreateOrdersCommand(drafts)
	if err != nil {
		return badRequest(err)
	}

	created, err := s.handlers.CreateOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ordersToDtos(created))
}

// GetOrders handles GET /orders?offset&limit.
func (s *Server) GetOrders(c echo.Context) error {
	if err := allowQuery(c, "offset", "limit"); err != nil {
		return err
	}

	offset, err := queryInt(c, "offset", queries.DefaultOffset)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", queries.DefaultLimit)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersQuery(offset, limit)
	if err != nil {
		return badRequest(err)
	}

	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderDtos(orders))
}

// GetOrder handles GET /orders/:order_id.
func (s *Server) GetOrder(c echo.Context) error {
	if err := allowQuery(c); err != nil {
		return err
	}

	id, err := pathID(c, "order_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(err)
	}

	found, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderDto(found))
}

// CompleteOrders handles POST /orders/complete.
// An unknown courier or order is a bad request here, not a 404.
func (s *Server) CompleteOrders(c echo.Context) error {
	if err := allowQuery(c); err != nil {
		return err
	}

	var req CompleteOrderRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	entries := make([]commands.CompletionEntry, 0, len(req.CompleteInfo))
	for _, dto := range req.CompleteInfo {
		entries = append(entries, commands.CompletionEntry{
			CourierID:    kernel.ID(*dto.CourierID),
			OrderID:      kernel.ID(*dto.OrderID),
			CompleteTime: *dto.CompleteTime,
		})
	}

	cmd, err := commands.NewCompleteOrdersCommand(entries)
	if err != nil {
		return badRequest(err)
	}

	completed, err := s.handlers.CompleteOrders.Handle(c.Request().Context(), cmd)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return badRequest(err)
	}
	if err != nil {
		return err
	}

	s.metrics.OrdersCompletedTotal.Add(float64(len(completed)))

	return c.JSON(http.StatusOK, ordersToDtos(completed))
}

// AssignOrders handles POST /orders/assign?date.
func (s *Server) AssignOrders(c echo.Context) error {
	if err := allowQuery(c, "date"); err != nil {
		return err
	}

	date, err := queryDate(c, "date", s.now())
	if err != nil {
		return err
	}

	result, err := s.handlers.AssignOrders.Handle(c.Request().Context(), commands.NewAssignOrdersCommand(date))
	s.metrics.ObserveAssignment("http", result.AssignedCount(), err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAssignOrdersResponse(result))
}

func ordersToDtos(orders []*order.Order) []OrderDto {
	out := make([]OrderDto, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDto(queries.NewOrderResponse(o)))
	}
	return out
}
