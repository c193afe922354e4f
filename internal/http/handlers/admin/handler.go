package admin

import "github.com/Deekshith-46/brain-buzz/internal/provider"

// Handler serves the management API: catalog authoring, coupon and
// purchase administration, user management.
type Handler struct {
	*provider.Container
}

// New creates the admin handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
