package service

import (
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/repository"
)

// EntitlementService answers whether a user currently owns an item.
// Access requires a completed purchase whose expiry date is unset
// (lifetime) or still in the future.
type EntitlementService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewEntitlementService creates the entitlement checker
func NewEntitlementService(purchaseRepo repository.PurchaseRepository) *EntitlementService {
	return &EntitlementService{purchaseRepo: purchaseRepo}
}

// HasAccess reports whether the user holds a live entitlement to the item
func (s *EntitlementService) HasAccess(userID uint, itemType string, itemID uint, now time.Time) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.purchaseRepo.HasCompletedForItem(userID, itemType, itemID, now)
}
