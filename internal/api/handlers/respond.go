package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babounette/internal/pkg/common"
)

// writeError traduit une erreur métier en réponse HTTP
func writeError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	if ce, ok := common.AsCustomError(err); ok {
		c.JSON(ce.Status, common.ErrorResponse{
			Code:    ce.Code,
			Message: ce.Message,
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "erreur interne du serveur",
	})
}
