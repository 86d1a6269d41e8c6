package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/storewatch/internal/notify"
	"github.com/smallbiznis/storewatch/internal/session"
)

// NotifyPreview renders the session's message template against one order.
func (s *Server) NotifyPreview(c *gin.Context) {
	state := session.FromContext(c)
	orders, ok := s.annotated(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	for _, o := range orders {
		if o.ID == id || o.Number == id {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{
				"order_id": o.ID,
				"message":  notify.Render(state.Settings().MessageTemplate, o),
			}})
			return
		}
	}
	AbortWithError(c, ErrNotFound)
}
