package forms

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formlab-backend/internal/shared/server/middleware"
	"formlab-backend/internal/shared/server/respond"
	"formlab-backend/internal/shared/svcerr"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches form lifecycle routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/complex-form/start", h.start)
	rg.POST("/complex-form/save", h.save)
	rg.POST("/complex-form/validate", h.validate)
	rg.POST("/complex-form/submit", h.submit)
	rg.GET("/complex-form/submissions/:id", h.submission)
}

// RegisterDevRoutes attaches dev-only routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/cleanup", h.cleanup)
}

func (h *Handler) start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	draft, err := h.Svc.Start(c.Request.Context(), userID)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	c.Set("draftId", draft.ID)
	respond.OK(c, draft)
}

type saveRequest struct {
	DraftID string         `json:"draftId"`
	Step    *int           `json:"step"`
	Data    map[string]any `json:"data"`
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid request format", nil)
		return
	}
	if req.Step == nil || *req.Step < 1 || *req.Step > TotalSteps || req.Data == nil {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid request format", nil)
		return
	}

	c.Set("formStep", *req.Step)
	draft, err := h.Svc.SaveDraft(c.Request.Context(), userID, req.DraftID, *req.Step, req.Data)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	c.Set("draftId", draft.ID)
	respond.OK(c, draft)
}

type validateRequest struct {
	Step *int           `json:"step"`
	Data map[string]any `json:"data"`
}

func (h *Handler) validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid request format", nil)
		return
	}
	if req.Step == nil || req.Data == nil {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid request format", nil)
		return
	}

	c.Set("formStep", *req.Step)
	result, err := h.Svc.ValidateStep(*req.Step, req.Data)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	respond.OK(c, result)
}

type submitRequest struct {
	DraftID string `json:"draftId"`
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DraftID == "" {
		respond.Error(c, http.StatusBadRequest, svcerr.CodeValidation, "Invalid request format", nil)
		return
	}

	c.Set("draftId", req.DraftID)
	sub, err := h.Svc.Submit(c.Request.Context(), userID, req.DraftID)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	c.Set("submissionId", sub.ID)
	respond.OK(c, sub)
}

func (h *Handler) submission(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sub, err := h.Svc.GetSubmission(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respond.FromError(c, err)
		return
	}

	c.Set("submissionId", sub.ID)
	respond.OK(c, sub)
}

func (h *Handler) cleanup(c *gin.Context) {
	count, err := h.Svc.CleanupExpired(c.Request.Context())
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"removed": count})
}
