package commands_test

import (
	"errors"
	"testing"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"
	"lavka/internal/core/domain/services"
	"lavka/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type completeFixture struct {
	uow         *MockUoW
	factory     *MockUoWFactory
	orderRepo   *MockOrderRepository
	courierRepo *MockCourierRepository
	handler     commands.CompleteOrdersCommandHandler
}

func newCompleteFixture(t *testing.T) completeFixture {
	t.Helper()
	ctx := t.Context()

	f := completeFixture{
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		orderRepo:   new(MockOrderRepository),
		courierRepo: new(MockCourierRepository),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Once()
	f.uow.On("CourierRepository").Return(f.courierRepo).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	f.handler = commands.NewCompleteOrdersCommandHandler(
		f.factory,
		services.NewCompletionValidator(),
		commands.NewCatalogLocks(),
	)
	return f
}

func newCompleteOrdersCommand(t *testing.T, entries ...commands.CompletionEntry) commands.CompleteOrdersCommand {
	t.Helper()
	cmd, err := commands.NewCompleteOrdersCommand(entries)
	require.NoError(t, err)
	return cmd
}

func TestCompleteOrdersCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	f := newCompleteFixture(t)

	c := newCourier(t, 1, courier.Bike, []int{1, 2}, "09:00-18:00")
	first := newOrder(t, 10, 1, "10:00-12:00")
	second := newOrder(t, 11, 2, "11:00-13:00")

	f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(first, nil).Once()
	f.orderRepo.On("Get", ctx, kernel.ID(11)).Return(second, nil).Once()
	f.courierRepo.On("Get", ctx, kernel.ID(1)).Return(c, nil).Once()
	f.orderRepo.On("Update", ctx, first).Return(nil).Once()
	f.orderRepo.On("Update", ctx, second).Return(nil).Once()
	f.courierRepo.On("Update", ctx, c).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	cmd := newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(11, 15)},
		commands.CompletionEntry{CourierID: 1, OrderID: 11, CompleteTime: at(12, 30)},
	)

	// Act
	completed, err := f.handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Same(t, first, completed[0])
	assert.Same(t, second, completed[1])
	assert.Equal(t, order.Completed, first.Status())
	require.NotNil(t, first.CompleteTime())
	assert.True(t, first.CompleteTime().Equal(at(11, 15)))
	assert.Equal(t, []kernel.ID{10, 11}, c.CompletedOrders())
	f.uow.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
}

func TestCompleteOrdersCommandHandler_Handle_UnknownOrderAbortsBatch(t *testing.T) {
	ctx := t.Context()
	f := newCompleteFixture(t)

	f.orderRepo.On("Get", ctx, kernel.ID(99)).
		Return(nil, errs.NewObjectNotFoundError("order", "99")).Once()

	_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 1, OrderID: 99, CompleteTime: at(11, 0)},
	))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteOrdersCommandHandler_Handle_UnknownCourierAbortsBatch(t *testing.T) {
	ctx := t.Context()
	f := newCompleteFixture(t)

	f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(newOrder(t, 10, 1, "10:00-12:00"), nil).Once()
	f.courierRepo.On("Get", ctx, kernel.ID(5)).
		Return(nil, errs.NewObjectNotFoundError("courier", "5")).Once()

	_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 5, OrderID: 10, CompleteTime: at(11, 0)},
	))

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteOrdersCommandHandler_Handle_RejectedEntryWritesNothing(t *testing.T) {
	ctx := t.Context()
	f := newCompleteFixture(t)

	c := newCourier(t, 1, courier.Foot, []int{1}, "09:00-18:00")
	valid := newOrder(t, 10, 1, "10:00-12:00")
	foreign := newOrder(t, 11, 7, "10:00-12:00")

	f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(valid, nil).Once()
	f.orderRepo.On("Get", ctx, kernel.ID(11)).Return(foreign, nil).Once()
	f.courierRepo.On("Get", ctx, kernel.ID(1)).Return(c, nil).Once()

	_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(11, 0)},
		commands.CompletionEntry{CourierID: 1, OrderID: 11, CompleteTime: at(11, 0)},
	))

	var rejected *services.CompletionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, kernel.ID(11), rejected.OrderID)
	require.ErrorIs(t, err, services.ErrRegionMismatch)
	assert.Contains(t, err.Error(), "complete_info[1]")
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteOrdersCommandHandler_Handle_DuplicateEntryInBatch(t *testing.T) {
	ctx := t.Context()
	f := newCompleteFixture(t)

	c := newCourier(t, 1, courier.Foot, []int{1}, "09:00-18:00")
	o := newOrder(t, 10, 1, "10:00-12:00")

	f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(o, nil).Once()
	f.courierRepo.On("Get", ctx, kernel.ID(1)).Return(c, nil).Once()

	_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(11, 0)},
		commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(11, 5)},
	))

	require.ErrorIs(t, err, services.ErrAlreadyCompleted)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.orderRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestCompleteOrdersCommandHandler_Handle_OutsideWindows(t *testing.T) {
	tests := []struct {
		name    string
		when    int
		wantErr error
	}{
		{name: "courier off duty", when: 8*60 + 30, wantErr: services.ErrOutsideCourierHours},
		{name: "outside delivery hours", when: 13 * 60, wantErr: services.ErrOutsideDeliveryWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newCompleteFixture(t)

			f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(newOrder(t, 10, 1, "08:00-12:00"), nil).Once()
			f.courierRepo.On("Get", ctx, kernel.ID(1)).
				Return(newCourier(t, 1, courier.Auto, []int{1}, "09:00-18:00"), nil).Once()

			_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
				commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(tt.when/60, tt.when%60)},
			))

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompleteOrdersCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	f := newCompleteFixture(t)
	expectedError := errors.New("update failed")

	o := newOrder(t, 10, 1, "10:00-12:00")
	f.orderRepo.On("Get", ctx, kernel.ID(10)).Return(o, nil).Once()
	f.courierRepo.On("Get", ctx, kernel.ID(1)).
		Return(newCourier(t, 1, courier.Foot, []int{1}, "09:00-18:00"), nil).Once()
	f.orderRepo.On("Update", ctx, o).Return(expectedError).Once()

	_, err := f.handler.Handle(ctx, newCompleteOrdersCommand(t,
		commands.CompletionEntry{CourierID: 1, OrderID: 10, CompleteTime: at(11, 0)},
	))

	require.ErrorIs(t, err, expectedError)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCompleteOrdersCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCompleteOrdersCommandHandler(
		factory,
		services.NewCompletionValidator(),
		commands.NewCatalogLocks(),
	)

	_, err := handler.Handle(t.Context(), commands.CompleteOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrCompleteOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
