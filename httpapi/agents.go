package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listAgents(c *gin.Context) {
	all := s.registry.All()
	data := make([]gin.H, 0, len(all))
	for _, agent := range all {
		data = append(data, gin.H{
			"type":        agent.Type(),
			"name":        agent.Name(),
			"description": agent.Description(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (s *Server) agentCapabilities(c *gin.Context) {
	typ := c.Param("type")
	agent, ok := s.registry.Get(typ)
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", fmt.Sprintf("Agent type %q not found", typ)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agent.Info()})
}
