package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// QueueStats reports the depth of the event queue for health reporting.
type QueueStats interface {
	GetQueueLength() (int, error)
}

// Health reports liveness, plus the event queue depth when a queue client is
// connected. An unreachable queue does not fail the check; the depth is just
// omitted.
func Health(queue QueueStats) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{"status": "ok"}
		if queue != nil {
			if depth, err := queue.GetQueueLength(); err == nil {
				response["queueDepth"] = depth
			}
		}
		c.JSON(http.StatusOK, response)
	}
}
