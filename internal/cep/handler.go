package cep

import (
	"github.com/gin-gonic/gin"

	"formlab-backend/internal/shared/server/respond"
)

// Handler wires the CEP lookup endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the lookup route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/complex-form/cep/:cep", h.lookup)
}

func (h *Handler) lookup(c *gin.Context) {
	addr, err := h.Svc.Lookup(c.Param("cep"))
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, addr)
}
