package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/service"
)

// AuditLog records a completed schedule operation.
// reference names the saved schedule or rate card version the action touched, if any.
func AuditLog(loggingService service.LoggingService, c *gin.Context, action model.ActionType, reference, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "info", action, message)
	entry.Reference = reference
	entry.WithFields(fields)
	storeAudit(loggingService, entry)
}

// AuditLogError records a rejected schedule operation.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, action model.ActionType, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "error", action, message)
	if err != nil {
		entry.Error = err.Error()
	}
	entry.WithFields(fields)
	storeAudit(loggingService, entry)
}

func auditEntry(c *gin.Context, level string, action model.ActionType, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Actor:      GetActor(c),
		ActionType: action,
	}
}

// storeAudit hands entry to the async logger, or writes it on its own goroutine when none is running.
func storeAudit(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
