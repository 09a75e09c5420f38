package commands_test

import (
	"errors"
	"testing"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrdersCommand(t *testing.T) commands.CreateOrdersCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrdersCommand([]commands.OrderDraft{
		{Weight: 2.5, Region: 1, DeliveryHours: hours(t, "10:00-12:00"), Cost: 300},
		{Weight: 0.2, Region: 4, DeliveryHours: hours(t, "08:00-09:00", "18:00-20:00"), Cost: 50},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrdersCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	ids := new(MockIDSource)

	factory.On("Create").Return(uow).Once()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	ids.On("Next").Return(kernel.ID(10), nil).Once()
	ids.On("Next").Return(kernel.ID(11), nil).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Twice()

	handler := commands.NewCreateOrdersCommandHandler(factory, ids, commands.NewCatalogLocks())

	// Act
	created, err := handler.Handle(ctx, newCreateOrdersCommand(t))

	// Assert
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, kernel.ID(10), created[0].ID())
	assert.Equal(t, order.Created, created[0].Status())
	assert.Equal(t, 300, created[0].Cost())
	assert.Equal(t, kernel.ID(11), created[1].ID())
	assert.Equal(t, []string{"08:00-09:00", "18:00-20:00"}, kernel.FormatTimeWindows(created[1].DeliveryHours()))
	assert.Nil(t, created[1].CompleteTime())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	ids.AssertExpectations(t)
}

func TestCreateOrdersCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrdersCommandHandler(factory, new(MockIDSource), commands.NewCatalogLocks())

	_, err := handler.Handle(t.Context(), commands.CreateOrdersCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrdersCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrdersCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	expectedError := errors.New("repository add failed")

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	ids := new(MockIDSource)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	ids.On("Next").Return(kernel.ID(1), nil).Once()
	repo.On("Add", ctx, mock.Anything).Return(expectedError).Once()

	handler := commands.NewCreateOrdersCommandHandler(factory, ids, commands.NewCatalogLocks())

	created, err := handler.Handle(ctx, newCreateOrdersCommand(t))

	require.ErrorIs(t, err, expectedError)
	assert.Nil(t, created)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	ids.AssertNumberOfCalls(t, "Next", 1)
}
