package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/logger"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

// Envelope is the uniform success payload.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError writes any error through the platform error mapping.
func HandleError(c *gin.Context, err error) {
	platformerrors.WriteError(c, err, logger.GetLogger())
}

// HandleNewError builds a platform error at the HTTP boundary and writes it.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message, uuid string) {
	err := platformerrors.NewError(
		c.Request.Context(),
		platformerrors.LayerRoute,
		errorType,
		message,
		nil,
		uuid,
	)
	platformerrors.WriteHTTPError(c, err, logger.GetLogger())
}
