package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DownloadTokenValidator verifies a download token and returns the
// submission id it authorizes.
type DownloadTokenValidator interface {
	ValidateDownloadToken(tokenString string) (uuid.UUID, error)
}

const submissionIDKey = "download_submission_id"

// DownloadAuth gates artifact download routes behind the short-lived token
// issued at authentication. The token is accepted as a Bearer header or a
// "token" query parameter (for direct browser downloads).
func DownloadAuth(validator DownloadTokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			tokenString = q
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing download token"},
			})
			return
		}

		id, err := validator.ValidateDownloadToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired download token"},
			})
			return
		}

		c.Set(submissionIDKey, id)
		c.Next()
	}
}

// GetAuthorizedSubmissionID returns the submission id the download token
// authorizes.
func GetAuthorizedSubmissionID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(submissionIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
