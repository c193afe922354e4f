package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	return parseUintParam(c, "id")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid "+name, err)
		return 0, false
	}
	return uint(id), true
}

// parseTimeNullable parses an RFC3339 timestamp, treating empty as nil
func parseTimeNullable(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func moneyFromRequest(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

// DiscountRequest is the item-level discount payload shared by the
// catalog write endpoints
type DiscountRequest struct {
	Type       *string `json:"type"`
	Value      float64 `json:"value"`
	ValidUntil string  `json:"valid_until"`
}

func (r DiscountRequest) toInput() (service.DiscountInput, error) {
	validUntil, err := parseTimeNullable(r.ValidUntil)
	if err != nil {
		return service.DiscountInput{}, err
	}
	return service.DiscountInput{
		Type:       r.Type,
		Value:      moneyFromRequest(r.Value),
		ValidUntil: validUntil,
	}, nil
}
