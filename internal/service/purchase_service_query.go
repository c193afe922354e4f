package service

import (
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// ListForUser returns a user's purchase history, newest first
func (s *PurchaseService) ListForUser(userID uint, filter repository.PurchaseListFilter) ([]models.Purchase, int64, error) {
	filter.UserID = userID
	return s.purchaseRepo.ListByUser(filter)
}

// GetForUser returns one purchase owned by the user
func (s *PurchaseService) GetForUser(id, userID uint) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// GetByOrderID returns one purchase by its gateway order reference
func (s *PurchaseService) GetByOrderID(orderID string) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListAdmin returns the full ledger with admin filters
func (s *PurchaseService) ListAdmin(filter repository.PurchaseListFilter) ([]models.Purchase, int64, error) {
	return s.purchaseRepo.ListAdmin(filter)
}

// GetAdmin returns any purchase by id
func (s *PurchaseService) GetAdmin(id uint) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}
