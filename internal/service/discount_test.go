package service

import (
	"testing"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/constants"
	"github.com/Deekshith-46/brain-buzz/internal/models"

	"github.com/shopspring/decimal"
)

func moneyFromFloat(v float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
}

func TestResolveDiscountAbsent(t *testing.T) {
	base := moneyFromFloat(499)
	got := ResolveDiscount(base, nil, time.Now())
	if !got.Decimal.Equal(base.Decimal) {
		t.Fatalf("expected base price %s, got %s", base, got)
	}
}

func TestResolveDiscountPercentage(t *testing.T) {
	kind := constants.DiscountTypePercentage
	got := ResolveDiscount(moneyFromFloat(200), &models.DiscountDescriptor{
		Type:  kind,
		Value: moneyFromFloat(25),
	}, time.Now())
	if !got.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s", got)
	}
}

func TestResolveDiscountFixed(t *testing.T) {
	got := ResolveDiscount(moneyFromFloat(200), &models.DiscountDescriptor{
		Type:  constants.DiscountTypeFixed,
		Value: moneyFromFloat(50),
	}, time.Now())
	if !got.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s", got)
	}
}

func TestResolveDiscountFloorsAtZero(t *testing.T) {
	got := ResolveDiscount(moneyFromFloat(30), &models.DiscountDescriptor{
		Type:  constants.DiscountTypeFixed,
		Value: moneyFromFloat(100),
	}, time.Now())
	if !got.Decimal.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestResolveDiscountExpired(t *testing.T) {
	base := moneyFromFloat(200)
	past := time.Now().Add(-time.Hour)
	got := ResolveDiscount(base, &models.DiscountDescriptor{
		Type:       constants.DiscountTypePercentage,
		Value:      moneyFromFloat(50),
		ValidUntil: &past,
	}, time.Now())
	if !got.Decimal.Equal(base.Decimal) {
		t.Fatalf("expected expired discount to leave base %s, got %s", base, got)
	}
}

func TestResolveDiscountAppliesAtExactDeadline(t *testing.T) {
	now := time.Now()
	got := ResolveDiscount(moneyFromFloat(100), &models.DiscountDescriptor{
		Type:       constants.DiscountTypePercentage,
		Value:      moneyFromFloat(10),
		ValidUntil: &now,
	}, now)
	if !got.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected discount to hold at its deadline instant, got %s", got)
	}
}

func TestResolveDiscountFutureExpiryStillApplies(t *testing.T) {
	future := time.Now().Add(time.Hour)
	got := ResolveDiscount(moneyFromFloat(100), &models.DiscountDescriptor{
		Type:       constants.DiscountTypePercentage,
		Value:      moneyFromFloat(10),
		ValidUntil: &future,
	}, time.Now())
	if !got.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected 90, got %s", got)
	}
}

func TestResolveDiscountUnknownKind(t *testing.T) {
	base := moneyFromFloat(100)
	got := ResolveDiscount(base, &models.DiscountDescriptor{
		Type:  "bogus",
		Value: moneyFromFloat(10),
	}, time.Now())
	if !got.Decimal.Equal(base.Decimal) {
		t.Fatalf("expected unknown kind to leave base %s, got %s", base, got)
	}
}
