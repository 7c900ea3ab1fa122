package service

import (
	"context"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"github.com/guttosm/bbs-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggingService persists request and audit log entries.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements LoggingService.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

// CreateLog stores a single entry, assigning an ID and timestamp when missing.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.repo.Create(ctx, toDocument(entry))
}

// CreateLogs stores entries in one bulk write.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}

	docs := make([]*repository.LogEntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = toDocument(entry)
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	docs, err := s.repo.Query(ctx, toRepositoryQuery(opts))
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = fromDocument(doc)
	}
	return entries, nil
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	return s.repo.Count(ctx, toRepositoryQuery(opts))
}

func toRepositoryQuery(opts model.LogQueryOptions) repository.LogQueryOptions {
	return repository.LogQueryOptions{
		RequestID:  opts.RequestID,
		Level:      opts.Level,
		Method:     opts.Method,
		Path:       opts.Path,
		ActionType: string(opts.ActionType),
		AuditOnly:  opts.AuditOnly,
		Actor:      opts.Actor,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}
}

func toDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	return &repository.LogEntryDocument{
		ID:         entry.ID,
		Timestamp:  entry.Timestamp,
		Level:      entry.Level,
		Message:    entry.Message,
		RequestID:  entry.RequestID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		Duration:   entry.Duration,
		IP:         entry.IP,
		UserAgent:  entry.UserAgent,
		Error:      entry.Error,
		Actor:      entry.Actor,
		ActionType: string(entry.ActionType),
		Reference:  entry.Reference,
		Fields:     entry.Fields,
	}
}

func fromDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp,
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		StatusCode: doc.StatusCode,
		Duration:   doc.Duration,
		IP:         doc.IP,
		UserAgent:  doc.UserAgent,
		Error:      doc.Error,
		Actor:      doc.Actor,
		ActionType: model.ActionType(doc.ActionType),
		Reference:  doc.Reference,
		Fields:     doc.Fields,
	}
}
