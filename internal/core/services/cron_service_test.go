package services_test

import (
	"testing"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"

	"github.com/stretchr/testify/mock"
)

func TestReconcileRiders_IdlesStuckRiders(t *testing.T) {
	riderRepo := new(MockRiderRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewCronService(riderRepo, tokenRepo)

	riderRepo.On("ListStuckInDelivery", mock.Anything).Return([]*models.Rider{
		{ID: 3, Email: "a@example.com", WorkStatus: string(domain.WorkInDelivery)},
		{ID: 9, Email: "b@example.com", WorkStatus: string(domain.WorkInDelivery)},
	}, nil)
	riderRepo.On("UpdateWorkStatus", mock.Anything, uint(3), string(domain.WorkIdle)).Return(nil)
	riderRepo.On("UpdateWorkStatus", mock.Anything, uint(9), string(domain.WorkIdle)).Return(nil)

	svc.ReconcileRiders()

	riderRepo.AssertExpectations(t)
}

func TestReconcileRiders_NothingToDo(t *testing.T) {
	riderRepo := new(MockRiderRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewCronService(riderRepo, tokenRepo)

	riderRepo.On("ListStuckInDelivery", mock.Anything).Return([]*models.Rider{}, nil)

	svc.ReconcileRiders()

	riderRepo.AssertNotCalled(t, "UpdateWorkStatus")
}
