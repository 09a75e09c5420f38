package commands_test

import (
	"context"
	"testing"
	"time"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.ID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	couriers, _ := args.Get(0).([]*courier.Courier)
	return couriers, args.Error(1)
}

func (m *MockCourierRepository) MaxID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByIDs(ctx context.Context, ids []kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) MaxID(ctx context.Context) (kernel.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ID), args.Error(1)
}

// MockUoW serves as UoW, CourierUoW and OrderUoW.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoWFactory struct {
	mock.Mock
}

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockIDSource struct {
	mock.Mock
}

func (m *MockIDSource) Next() (kernel.ID, error) {
	args := m.Called()
	return args.Get(0).(kernel.ID), args.Error(1)
}

func hours(t *testing.T, texts ...string) []kernel.TimeWindow {
	t.Helper()
	windows, err := kernel.ParseTimeWindows(texts)
	require.NoError(t, err)
	return windows
}

func newCourier(t *testing.T, id kernel.ID, courierType courier.Type, regions []int, working ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, courierType, regions, hours(t, working...))
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id kernel.ID, region int, delivery ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, 1.5, region, hours(t, delivery...), 100)
	require.NoError(t, err)
	return o
}

func at(hour, minute int) time.Time {
	return time.Date(2023, 5, 1, hour, minute, 0, 0, time.UTC)
}
