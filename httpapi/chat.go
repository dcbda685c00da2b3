package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/provider"
	"github.com/voyantic/concierge/store"
)

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
	UserID         string `json:"userId" binding:"required"`
}

// sendMessage runs one message through the engine and streams the
// agent's reply as server-sent events. Routing metadata rides on
// response headers so the client has it before the first delta.
func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}

	res, err := s.orch.ProcessMessage(c.Request.Context(), req.UserID, req.Message, req.ConversationID)
	if err != nil {
		s.replyError(c, err)
		return
	}

	c.Header("X-Conversation-Id", res.ConversationID)
	c.Header("X-Agent-Type", res.AgentType)
	c.Header("X-Intent", string(res.Classification.Intent))
	c.Header("X-Intent-Confidence", strconv.FormatFloat(res.Classification.Confidence, 'f', -1, 64))
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-res.Handle.Events()
		if !ok {
			return false
		}
		s.writeEvent(c, res.Handle, ev)
		return true
	})
}

func (s *Server) writeEvent(c *gin.Context, handle *agents.Handle, ev agents.Event) {
	switch ev.Type {
	case agents.EventTextDelta:
		c.SSEvent("text-delta", gin.H{"delta": ev.TextDelta})
	case agents.EventToolCall:
		c.SSEvent("tool-call", gin.H{"id": ev.ToolCall.ID, "name": ev.ToolCall.Name})
	case agents.EventToolResult:
		c.SSEvent("tool-result", gin.H{
			"id":      ev.ToolCall.ID,
			"name":    ev.ToolCall.Name,
			"isError": ev.Result.IsError(),
		})
	case agents.EventDone:
		payload := gin.H{}
		if usage := handle.Usage(); usage != nil {
			payload["usage"] = gin.H{
				"inputTokens":  usage.InputTokens,
				"outputTokens": usage.OutputTokens,
			}
		}
		c.SSEvent("done", payload)
	case agents.EventError:
		msg := "agent turn failed"
		if provider.IsQuotaExceeded(ev.Err) {
			msg = "model quota exceeded"
		}
		s.logger.Error("agent turn failed mid-stream", "error", ev.Err)
		c.SSEvent("error", gin.H{"message": msg})
	}
}

func (s *Server) getConversation(c *gin.Context) {
	conv, err := s.conversations.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conv})
}

func (s *Server) listConversations(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusUnprocessableEntity, errorBody("VALIDATION_ERROR", "userId query parameter is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := s.conversations.ListConversations(c.Request.Context(), userID, limit, offset)
	if err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       page.Items,
		"pagination": gin.H{"total": page.Total, "limit": limit, "offset": offset},
	})
}

func (s *Server) deleteConversation(c *gin.Context) {
	id := c.Param("id")
	if err := s.conversations.DeleteConversation(c.Request.Context(), id); err != nil {
		s.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "deleted": true}})
}

func (s *Server) replyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", "Conversation not found"))
	case provider.IsQuotaExceeded(err):
		c.JSON(http.StatusTooManyRequests, errorBody("QUOTA_EXCEEDED", "Model quota exceeded, try again later"))
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("INTERNAL_ERROR", "Internal server error"))
	}
}
