package service

import (
	"context"
	"encoding/json"

	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/pkg/logger"
)

type AuditStorage interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}

// AuditService records structured change records after workflow operations
// commit. Failures are logged and swallowed: the workflow never rolls back or
// reports an error because the sink was down.
type AuditService struct {
	storage AuditStorage
	logger  *logger.Logger
}

func NewAuditService(storage AuditStorage, log *logger.Logger) *AuditService {
	return &AuditService{
		storage: storage,
		logger:  log,
	}
}

func (s *AuditService) Record(ctx context.Context, table, operation string, actorID *string, oldValue, newValue interface{}) {
	record := &entity.AuditLog{
		TableName: table,
		Operation: operation,
		ActorID:   actorID,
		OldValue:  marshal(oldValue),
		NewValue:  marshal(newValue),
	}
	if err := s.storage.Create(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Errorf("failed to record audit log for %s %s: %v", operation, table, err)
	}
}

func marshal(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
