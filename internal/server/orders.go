package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
	"github.com/smallbiznis/storewatch/internal/session"
)

// annotated returns the session's orders with fees computed against the
// session's current schedule. Recomputed per request; the dataset itself
// is never mutated.
func (s *Server) annotated(state *session.State) ([]feesdomain.AnnotatedOrder, bool) {
	orders, _, _, loaded := state.Dataset()
	if !loaded {
		return nil, false
	}
	return s.feeSvc.Annotate(state.Schedule(), orders), true
}

func (s *Server) ListOrders(c *gin.Context) {
	state := session.FromContext(c)
	orders, ok := s.annotated(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}

	if method := strings.TrimSpace(c.Query("method")); method != "" {
		filtered := orders[:0:0]
		for _, o := range orders {
			if strings.EqualFold(o.Method, method) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	state := session.FromContext(c)
	orders, ok := s.annotated(state)
	if !ok {
		AbortWithError(c, ErrNoDataset)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	for _, o := range orders {
		if o.ID == id || o.Number == id {
			c.JSON(http.StatusOK, gin.H{"data": o})
			return
		}
	}
	AbortWithError(c, ErrNotFound)
}
