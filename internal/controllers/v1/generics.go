package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/models"
)

// currentUser returns the ID of the requesting user. The authentication
// middleware guarantees that the value is set and a valid UUID for
// every route registered below /v1, so this cannot fail for requests
// that reach a handler.
func currentUser(c *gin.Context) uuid.UUID {
	id, _ := uuid.Parse(c.GetString(string(models.ContextUserID)))
	return id
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource owned by the requesting user. The allow
// helper writes the allow header for the verbs the resource supports.
func resourceOptionsDetail[R models.Pot | models.Budget | models.Transaction](c *gin.Context, resource R, allow func(*gin.Context)) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("user_id = ?", currentUser(c)).First(&resource, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	allow(c)
}
