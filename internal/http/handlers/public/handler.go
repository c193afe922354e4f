package public

import "github.com/Deekshith-46/brain-buzz/internal/provider"

// Handler serves the learner-facing API: catalog browsing, pricing,
// checkout and account endpoints.
type Handler struct {
	*provider.Container
}

// New creates the public handler
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
