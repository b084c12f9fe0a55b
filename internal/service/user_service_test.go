package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shopcore/admin-service/internal/domain/entity"
	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/repository"
)

func newUserServiceForTest() (UserService, *MockUserRepository, *MockProductRepository, *MockSessionStore, *MockPublisher) {
	userRepo := new(MockUserRepository)
	productRepo := new(MockProductRepository)
	session := new(MockSessionStore)
	publisher := new(MockPublisher)
	svc := NewUserService(userRepo, productRepo, session, publisher, logger.NoOp{})
	return svc, userRepo, productRepo, session, publisher
}

func TestUpdateUser_RestoresStockForRemovedLines(t *testing.T) {
	svc, userRepo, productRepo, session, publisher := newUserServiceForTest()
	ctx := context.Background()

	old := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}
	updated := &entity.User{ID: "u1", FullName: "Jane", PurchasedLines: []entity.PurchaseLine{
		{ProductID: "p2", Quantity: 1},
	}}

	userRepo.On("GetByID", ctx, "u1").Return(old, nil)
	productRepo.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Quantity: 3}, nil)
	productRepo.On("Replace", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.ID == "p1" && p.Quantity == 5
	})).Return(&entity.Product{}, nil)
	userRepo.On("Replace", ctx, updated).Return(updated, nil)
	session.On("Load", ctx).Return(nil, repository.ErrNotFound)
	publisher.On("Publish", ctx, "purchase.reversed", mock.Anything).Return(nil)

	saved, err := svc.UpdateUser(ctx, updated)

	assert.NoError(t, err)
	assert.Equal(t, "Jane", saved.FullName)
	productRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateUser_RecomputesAddress(t *testing.T) {
	svc, userRepo, _, session, _ := newUserServiceForTest()
	ctx := context.Background()

	updated := &entity.User{ID: "u1", Address1: "2 New Rd", City: "Pune", Address: "stale"}

	userRepo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	userRepo.On("Replace", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Address == "2 New Rd, Pune"
	})).Return(updated, nil)
	session.On("Load", ctx).Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateUser(ctx, updated)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc, userRepo, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateUser(ctx, &entity.User{ID: "missing"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	userRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestUpdateUser_RestorationFailureDoesNotBlockUpdate(t *testing.T) {
	svc, userRepo, productRepo, session, publisher := newUserServiceForTest()
	ctx := context.Background()

	old := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{{ProductID: "p1", Quantity: 2}}}
	updated := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{}}

	userRepo.On("GetByID", ctx, "u1").Return(old, nil)
	productRepo.On("GetByID", ctx, "p1").Return(nil, errors.New("backend unreachable"))
	userRepo.On("Replace", ctx, updated).Return(updated, nil)
	session.On("Load", ctx).Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateUser(ctx, updated)

	assert.NoError(t, err)
	// Restoration never happened, so no reversal event either.
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateUser_RefreshesActiveSession(t *testing.T) {
	svc, userRepo, _, session, _ := newUserServiceForTest()
	ctx := context.Background()

	updated := &entity.User{ID: "u1", FullName: "Jane"}

	userRepo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)
	userRepo.On("Replace", ctx, updated).Return(updated, nil)
	session.On("Load", ctx).Return(&entity.User{ID: "u1"}, nil)
	session.On("Save", ctx, updated).Return(nil)

	_, err := svc.UpdateUser(ctx, updated)

	assert.NoError(t, err)
	session.AssertExpectations(t)
}

func TestRemovePurchaseLine_PartialRemoval(t *testing.T) {
	svc, userRepo, productRepo, session, publisher := newUserServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{
		{ProductID: "p1", Quantity: 3},
	}}

	userRepo.On("GetByID", ctx, "u1").Return(user, nil)
	productRepo.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Quantity: 1}, nil)
	productRepo.On("Replace", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Quantity == 3
	})).Return(&entity.Product{}, nil)
	userRepo.On("Replace", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return len(u.PurchasedLines) == 1 && u.PurchasedLines[0].Quantity == 1
	})).Return(user, nil)
	session.On("Load", ctx).Return(nil, repository.ErrNotFound)
	publisher.On("Publish", ctx, "purchase.reversed", mock.Anything).Return(nil)

	_, err := svc.RemovePurchaseLine(ctx, "u1", "p1", 2)

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestRemovePurchaseLine_NoSuchLine(t *testing.T) {
	svc, userRepo, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1"}, nil)

	_, err := svc.RemovePurchaseLine(ctx, "u1", "p1", 1)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemovePurchaseLine_QuantityAboveLine(t *testing.T) {
	svc, userRepo, productRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{{ProductID: "p1", Quantity: 2}}}
	userRepo.On("GetByID", ctx, "u1").Return(user, nil)

	_, err := svc.RemovePurchaseLine(ctx, "u1", "p1", 5)

	assert.ErrorIs(t, err, ErrValidationFailed)
	productRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestDeleteUser_RestoresAllLines(t *testing.T) {
	svc, userRepo, productRepo, _, publisher := newUserServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}

	userRepo.On("GetByID", ctx, "u1").Return(user, nil)
	productRepo.On("GetByID", ctx, "p1").Return(&entity.Product{ID: "p1", Quantity: 0}, nil)
	productRepo.On("GetByID", ctx, "p2").Return(&entity.Product{ID: "p2", Quantity: 4}, nil)
	productRepo.On("Replace", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return (p.ID == "p1" && p.Quantity == 2) || (p.ID == "p2" && p.Quantity == 5)
	})).Return(&entity.Product{}, nil)
	userRepo.On("Delete", ctx, "u1").Return(nil)
	publisher.On("Publish", ctx, "user.deleted", mock.Anything).Return(nil)

	err := svc.DeleteUser(ctx, "u1")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeleteUser_SkipsMissingProducts(t *testing.T) {
	svc, userRepo, productRepo, _, publisher := newUserServiceForTest()
	ctx := context.Background()

	user := &entity.User{ID: "u1", PurchasedLines: []entity.PurchaseLine{{ProductID: "gone", Quantity: 2}}}

	userRepo.On("GetByID", ctx, "u1").Return(user, nil)
	productRepo.On("GetByID", ctx, "gone").Return(nil, repository.ErrNotFound)
	userRepo.On("Delete", ctx, "u1").Return(nil)
	publisher.On("Publish", ctx, "user.deleted", mock.Anything).Return(nil)

	err := svc.DeleteUser(ctx, "u1")

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	userRepo.AssertCalled(t, "Delete", ctx, "u1")
}

func TestReceipt(t *testing.T) {
	svc, userRepo, _, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := &entity.User{
		ID:       "u1",
		FullName: "Jane",
		City:     "Pune",
		Country:  "India",
		PurchasedLines: []entity.PurchaseLine{
			{ProductID: "p1", Quantity: 2, Price: 10},
			{ProductID: "p2", Quantity: 1, Price: 5},
		},
	}
	userRepo.On("GetByID", ctx, "u1").Return(user, nil)

	receipt, err := svc.Receipt(ctx, "u1")

	assert.NoError(t, err)
	assert.Equal(t, "Jane", receipt.FullName)
	assert.Equal(t, "Pune, India", receipt.Address)
	assert.Equal(t, 3, receipt.TotalQuantity)
	assert.InDelta(t, 25.0, receipt.TotalAmount, 0.0001)
}
