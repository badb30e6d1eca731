package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func errorBody(message string) gin.H {
	return gin.H{"error": gin.H{"message": message}}
}

// Recovery turns a panic in any handler into the JSON 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("❌ [%s] panic serving %s %s: %v", GetRequestID(c), c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(http.StatusText(http.StatusInternalServerError)))
	})
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody(http.StatusText(http.StatusNotFound)))
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, errorBody(http.StatusText(http.StatusMethodNotAllowed)))
}
