package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formlab-backend/internal/shared/server/respond"
	"formlab-backend/internal/shared/svcerr"
)

// maxUploadBody bounds the JSON payload; base64 inflates content by ~4/3.
const maxUploadBody = 8 << 20

// Handler wires the upload endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the upload route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/complex-form/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid file data", nil)
		return
	}

	meta, err := h.Svc.Upload(c.Request.Context(), req)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	respond.OK(c, meta)
}
