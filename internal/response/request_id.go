package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key the response metadata reads
// the request id from.
const ContextKeyRequestID = "request_id"

// requestIDHeader is honored when the caller supplies its own id, so a
// game client can correlate its retries across admin and join calls.
const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id and echoes it back in
// the response header. A client-supplied id is kept; otherwise one is
// generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
