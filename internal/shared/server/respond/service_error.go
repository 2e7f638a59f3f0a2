package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formlab-backend/internal/shared/svcerr"
)

// FromError maps a service error to the standard error envelope. Unrecognized
// errors fall through to a generic 500.
func FromError(c *gin.Context, err error) {
	if svcErr, ok := svcerr.As(err); ok {
		Error(c, svcErr.Status, svcErr.Code, svcErr.Message, svcErr.Details)
		return
	}
	Error(c, http.StatusInternalServerError, svcerr.CodeInternal, "Unexpected server error", nil)
}
