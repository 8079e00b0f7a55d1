package response

import (
	"github.com/gin-gonic/gin"
)

// ContextKeyRequestID is the gin context key holding the request id.
const ContextKeyRequestID = "RequestID"

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Message   string      `json:"message,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RequestID returns the id assigned by the RequestID middleware, if any.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get(ContextKeyRequestID)
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// JSON sends a success payload as-is. Submission results already carry
// their own success flag and message.
func JSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}

// Error sends an error response
func Error(c *gin.Context, code int, label, message string, details interface{}) {
	c.JSON(code, ErrorBody{
		Success:   false,
		Error:     label,
		Message:   message,
		Details:   details,
		RequestID: RequestID(c),
	})
}
