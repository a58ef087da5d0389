package handlers

import (
	"github.com/gin-gonic/gin"

	"invacc/internal/domain/audit"
	"invacc/internal/infrastructure/http/v1/dto"
)

const (
	defaultLogLimit = 200
	maxLogLimit     = 1000
)

// LogHandler serves the audit log.
type LogHandler struct {
	*BaseHandler
	reader audit.Reader
}

// NewLogHandler creates a new log handler.
func NewLogHandler(base *BaseHandler, reader audit.Reader) *LogHandler {
	return &LogHandler{BaseHandler: base, reader: reader}
}

// List handles GET /logs, newest first.
func (h *LogHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", defaultLogLimit)
	if limit <= 0 || limit > maxLogLimit {
		limit = defaultLogLimit
	}

	entries, err := h.reader.ListLogs(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewItemsResponse(entries))
}
