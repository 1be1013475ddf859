package handlers

import (
	"net/http"

	"alc-pricing/internal/api/models"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// bindJSON binds the request body into req, answering 400 INVALID_REQUEST on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, err.Error())
		return false
	}
	return true
}
