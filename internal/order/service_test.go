package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrder(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrdersByTable(ctx context.Context, tableNo string) ([]*Order, error) {
	args := m.Called(ctx, tableNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrdersByMenu(ctx context.Context, menuName string) ([]*Order, error) {
	args := m.Called(ctx, menuName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetActiveOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetUnpaidOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateServeStatus(ctx context.Context, id string, serveYn string) (*Order, error) {
	args := m.Called(ctx, id, serveYn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdatePayStatus(ctx context.Context, id string, payYn string) (*Order, error) {
	args := m.Called(ctx, id, payYn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateServeStatusBatch(ctx context.Context, ids []string, serveYn string) error {
	args := m.Called(ctx, ids, serveYn)
	return args.Error(0)
}

func (m *MockRepository) CancelOrder(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

// --- Tests ---

func TestService_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		in := CreateOrderInput{TableNo: "5", MenuName: "Kimchi Stew", Price: 9000, Qty: 2}
		expected := &Order{ID: "o-1", TableNo: "5", MenuName: "Kimchi Stew", Price: 9000, Qty: 2, ServeYn: "N", PayYn: "N", UseYn: "Y"}
		mockRepo.On("CreateOrder", ctx, in).Return(expected, nil)

		res, err := svc.CreateOrder(ctx, in)
		assert.NoError(t, err)
		assert.Equal(t, expected, res)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty table number rejected before repo call", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.CreateOrder(ctx, CreateOrderInput{TableNo: "", MenuName: "Bibimbap", Price: 8000, Qty: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Zero qty rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.CreateOrder(ctx, CreateOrderInput{TableNo: "5", MenuName: "Bibimbap", Price: 8000, Qty: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.CreateOrder(ctx, CreateOrderInput{TableNo: "5", MenuName: "Bibimbap", Price: -1, Qty: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_CreateOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Batch success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ins := []CreateOrderInput{
			{TableNo: "5", MenuName: "Kimchi Stew", Price: 9000, Qty: 2},
			{TableNo: "5", MenuName: "Bibimbap", Price: 8000, Qty: 1},
		}
		mockRepo.On("CreateOrder", ctx, ins[0]).Return(&Order{ID: "o-1"}, nil)
		mockRepo.On("CreateOrder", ctx, ins[1]).Return(&Order{ID: "o-2"}, nil)

		res, err := svc.CreateOrders(ctx, ins)
		assert.NoError(t, err)
		assert.Len(t, res, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Whole batch validated before anything is written", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ins := []CreateOrderInput{
			{TableNo: "5", MenuName: "Kimchi Stew", Price: 9000, Qty: 2},
			{TableNo: "5", MenuName: "", Price: 8000, Qty: 1},
		}

		_, err := svc.CreateOrders(ctx, ins)
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Repo failure stops the batch", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ins := []CreateOrderInput{
			{TableNo: "5", MenuName: "Kimchi Stew", Price: 9000, Qty: 2},
			{TableNo: "5", MenuName: "Bibimbap", Price: 8000, Qty: 1},
		}
		mockRepo.On("CreateOrder", ctx, ins[0]).Return(nil, errors.New("db error"))

		_, err := svc.CreateOrders(ctx, ins)
		assert.Error(t, err)
		mockRepo.AssertNumberOfCalls(t, "CreateOrder", 1)
	})
}

func TestService_TableGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("Active feed grouped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetActiveOrders", ctx).Return([]*Order{
			{ID: "o-2", TableNo: "5", Price: 9000, Qty: 2},
			{ID: "o-1", TableNo: "3", Price: 8000, Qty: 1},
		}, nil)

		groups, err := svc.GetTableGroups(ctx)
		assert.NoError(t, err)
		assert.Len(t, groups, 2)
		assert.Equal(t, "5", groups[0].TableNo)
		assert.Equal(t, 18000, groups[0].TotalAmount)
	})

	t.Run("Unpaid feed grouped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetUnpaidOrders", ctx).Return([]*Order{
			{ID: "o-1", TableNo: "5", Price: 9000, Qty: 2, PayYn: "N"},
		}, nil)

		groups, err := svc.GetUnpaidTableGroups(ctx)
		assert.NoError(t, err)
		assert.Len(t, groups, 1)
		assert.Equal(t, 1, groups[0].TotalOrders)
	})

	t.Run("Feed error passthrough", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetActiveOrders", ctx).Return(nil, errors.New("db error"))

		_, err := svc.GetTableGroups(ctx)
		assert.Error(t, err)
	})
}

func TestService_MenuGroups(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	mockRepo.On("GetActiveOrders", ctx).Return([]*Order{
		{ID: "o-2", MenuName: "Kimchi Stew", Qty: 2},
		{ID: "o-1", MenuName: "Kimchi Stew", Qty: 1},
	}, nil)

	groups, err := svc.GetMenuGroups(ctx)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].TotalQty)
}

func TestService_UpdateServeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("UpdateServeStatus", ctx, "o-1", "Y").
			Return(&Order{ID: "o-1", ServeYn: "Y"}, nil)

		res, err := svc.UpdateServeStatus(ctx, "o-1", "Y")
		assert.NoError(t, err)
		assert.Equal(t, "Y", res.ServeYn)
	})

	t.Run("Invalid flag rejected before repo call", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.UpdateServeStatus(ctx, "o-1", "X")
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "UpdateServeStatus")
	})
}

func TestService_UpdateServeStatusBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ids := []string{"o-1", "o-2"}
		mockRepo.On("UpdateServeStatusBatch", ctx, ids, "Y").Return(nil)

		err := svc.UpdateServeStatusBatch(ctx, ids, "Y")
		assert.NoError(t, err)
	})

	t.Run("Empty id list is a no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("UpdateServeStatusBatch", ctx, []string(nil), "Y").Return(nil)

		err := svc.UpdateServeStatusBatch(ctx, nil, "Y")
		assert.NoError(t, err)
	})

	t.Run("Invalid flag", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		err := svc.UpdateServeStatusBatch(ctx, []string{"o-1"}, "maybe")
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "UpdateServeStatusBatch")
	})
}

func TestService_PayTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks only unpaid orders", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetOrdersByTable", ctx, "5").Return([]*Order{
			{ID: "o-1", PayYn: "N"},
			{ID: "o-2", PayYn: "Y"},
			{ID: "o-3", PayYn: "N"},
		}, nil)
		mockRepo.On("UpdatePayStatus", ctx, "o-1", "Y").Return(&Order{ID: "o-1", PayYn: "Y"}, nil)
		mockRepo.On("UpdatePayStatus", ctx, "o-3", "Y").Return(&Order{ID: "o-3", PayYn: "Y"}, nil)

		err := svc.PayTable(ctx, "5", "Y")
		assert.NoError(t, err)
		mockRepo.AssertNumberOfCalls(t, "UpdatePayStatus", 2)
		mockRepo.AssertNotCalled(t, "UpdatePayStatus", ctx, "o-2", "Y")
	})

	t.Run("Invalid flag rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		err := svc.PayTable(ctx, "5", "paid")
		assert.ErrorIs(t, err, ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "GetOrdersByTable")
	})

	t.Run("Partial failure leaves earlier rows updated", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetOrdersByTable", ctx, "5").Return([]*Order{
			{ID: "o-1", PayYn: "N"},
			{ID: "o-2", PayYn: "N"},
		}, nil)
		mockRepo.On("UpdatePayStatus", ctx, "o-1", "Y").Return(&Order{ID: "o-1", PayYn: "Y"}, nil)
		mockRepo.On("UpdatePayStatus", ctx, "o-2", "Y").Return(nil, errors.New("db error"))

		err := svc.PayTable(ctx, "5", "Y")
		assert.Error(t, err)
		mockRepo.AssertNumberOfCalls(t, "UpdatePayStatus", 2)
	})
}

func TestService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("CancelOrder", ctx, "o-1").
			Return(&Order{ID: "o-1", UseYn: "N", ServeYn: "N", PayYn: "N"}, nil)

		res, err := svc.CancelOrder(ctx, "o-1")
		assert.NoError(t, err)
		assert.Equal(t, "N", res.UseYn)
		assert.Equal(t, "N", res.ServeYn)
		assert.Equal(t, "N", res.PayYn)
	})

	t.Run("NotFound passthrough", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("CancelOrder", ctx, "missing").Return(nil, ErrOrderNotFound)

		_, err := svc.CancelOrder(ctx, "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_CancelTable(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancels every active order", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetOrdersByTable", ctx, "5").Return([]*Order{
			{ID: "o-1"},
			{ID: "o-2"},
		}, nil)
		mockRepo.On("CancelOrder", ctx, "o-1").Return(&Order{ID: "o-1", UseYn: "N"}, nil)
		mockRepo.On("CancelOrder", ctx, "o-2").Return(&Order{ID: "o-2", UseYn: "N"}, nil)

		err := svc.CancelTable(ctx, "5")
		assert.NoError(t, err)
		mockRepo.AssertNumberOfCalls(t, "CancelOrder", 2)
	})

	t.Run("Empty table is a no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		mockRepo.On("GetOrdersByTable", ctx, "9").Return([]*Order{}, nil)

		err := svc.CancelTable(ctx, "9")
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "CancelOrder")
	})
}
