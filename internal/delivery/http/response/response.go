package response

import (
	"labournet-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response documents the message envelope. Extra fields such as user, token
// or missingFields are merged at the top level next to message.
type Response struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends {message, ...fields, request_id}
func Success(c *gin.Context, code int, message string, fields gin.H) {
	c.JSON(code, envelope(c, message, fields))
}

// Resource sends a bare resource or list, the shape the frontend consumes for projects and applications
func Resource(c *gin.Context, code int, v interface{}) {
	c.JSON(code, v)
}

// Error sends {message, ...details, request_id}
func Error(c *gin.Context, code int, message string, details map[string]interface{}) {
	c.JSON(code, envelope(c, message, details))
}

func envelope(c *gin.Context, message string, fields map[string]interface{}) gin.H {
	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	body["message"] = message
	if id := requestID(c); id != "" {
		body["request_id"] = id
	}
	return body
}
