package http_test

import (
	"context"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/application/usecases/queries"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockCreateCouriersHandler struct {
	mock.Mock
}

func (m *MockCreateCouriersHandler) Handle(
	ctx context.Context,
	cmd commands.CreateCouriersCommand,
) ([]*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

type MockCreateOrdersHandler struct {
	mock.Mock
}

func (m *MockCreateOrdersHandler) Handle(ctx context.Context, cmd commands.CreateOrdersCommand) ([]*order.Order, error) {
	args := m.Called(ctx, cmd)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCompleteOrdersHandler struct {
	mock.Mock
}

func (m *MockCompleteOrdersHandler) Handle(
	ctx context.Context,
	cmd commands.CompleteOrdersCommand,
) ([]*order.Order, error) {
	args := m.Called(ctx, cmd)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockAssignOrdersHandler struct {
	mock.Mock
}

func (m *MockAssignOrdersHandler) Handle(
	ctx context.Context,
	cmd commands.AssignOrdersCommand,
) (services.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.Assignment), args.Error(1)
}

type MockGetCouriersHandler struct {
	mock.Mock
}

func (m *MockGetCouriersHandler) Handle(
	ctx context.Context,
	query queries.GetCouriersQuery,
) (queries.GetCouriersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCouriersQueryResponse), args.Error(1)
}

type MockGetCourierHandler struct {
	mock.Mock
}

func (m *MockGetCourierHandler) Handle(ctx context.Context, query queries.GetCourierQuery) (queries.CourierResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.CourierResponse), args.Error(1)
}

type MockGetCourierMetaInfoHandler struct {
	mock.Mock
}

func (m *MockGetCourierMetaInfoHandler) Handle(
	ctx context.Context,
	query queries.GetCourierMetaInfoQuery,
) (queries.GetCourierMetaInfoQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCourierMetaInfoQueryResponse), args.Error(1)
}

type MockGetCourierAssignmentsHandler struct {
	mock.Mock
}

func (m *MockGetCourierAssignmentsHandler) Handle(
	ctx context.Context,
	query queries.GetCourierAssignmentsQuery,
) (queries.GetCourierAssignmentsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCourierAssignmentsQueryResponse), args.Error(1)
}

type MockGetOrdersHandler struct {
	mock.Mock
}

func (m *MockGetOrdersHandler) Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.OrderResponse)
	return orders, args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderResponse), args.Error(1)
}
