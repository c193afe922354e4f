package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/Deekshith-46/brain-buzz/internal/http/response"

	"github.com/gin-gonic/gin"
)

// QuoteItem prices an item with its live discount and an optional
// coupon. Open to anonymous callers so the storefront can show final
// prices before sign-in.
func (h *Handler) QuoteItem(c *gin.Context) {
	itemType := strings.TrimSpace(c.Query("item_type"))
	itemID, _ := strconv.ParseUint(c.Query("item_id"), 10, 64)
	if itemType == "" || itemID == 0 {
		respondError(c, response.CodeBadRequest, "item_type and item_id are required", nil)
		return
	}

	quote, err := h.PricingService.Quote(itemType, uint(itemID), c.Query("coupon_code"), time.Now())
	if err != nil {
		respondQuoteError(c, err)
		return
	}

	response.Success(c, quote)
}
