package response

import (
	"log"
	"net/http"

	"github.com/Flexasaurusrex/art-claps-sub000/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetFid retrieves the authenticated Farcaster id from the context.
func GetFid(c *gin.Context) (int64, error) {
	fid, exists := c.Get("fid")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	fidVal, ok := fid.(int64)
	if !ok || fidVal <= 0 {
		return 0, apperror.ErrUnauthorized
	}

	return fidVal, nil
}

// ActingFid resolves who performs a mutation: the authenticated token fid when
// one was presented, otherwise the fid supplied in the request body.
func ActingFid(c *gin.Context, bodyFid int64) int64 {
	if fid, err := GetFid(c); err == nil {
		return fid
	}
	return bodyFid
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
