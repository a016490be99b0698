package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclub/lendhub/internal/domain/entity"
)

type fakeAuditStorage struct {
	logs []entity.AuditLog
	err  error
}

func (f *fakeAuditStorage) Create(_ context.Context, log *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.logs = append(f.logs, *log)
	return nil
}

func TestAuditRecord(t *testing.T) {
	storage := &fakeAuditStorage{}
	svc := NewAuditService(storage, testLogger())

	actor := "user-1"
	svc.Record(context.Background(), "item_borrowing_requests", "INSERT", &actor, nil,
		entity.BorrowingTransaction{ID: 1, Status: entity.BorrowStatusApproved})

	require.Len(t, storage.logs, 1)
	record := storage.logs[0]
	assert.Equal(t, "item_borrowing_requests", record.TableName)
	assert.Equal(t, "INSERT", record.Operation)
	assert.Equal(t, &actor, record.ActorID)
	assert.Empty(t, record.OldValue)
	assert.Contains(t, record.NewValue, `"APPROVED"`)
}

func TestAuditRecordSinkFailure(t *testing.T) {
	storage := &fakeAuditStorage{err: errors.New("sink down")}
	svc := NewAuditService(storage, testLogger())

	// A failing sink must not panic or leak the error to the caller.
	svc.Record(context.Background(), "item_borrowing_requests", "INSERT", nil, nil, nil)
	assert.Empty(t, storage.logs)
}

func TestAuditRecordCancelledContext(t *testing.T) {
	storage := &fakeAuditStorage{}
	svc := NewAuditService(storage, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, "item_borrowing_requests", "UPDATE", nil, "before", "after")
	require.Len(t, storage.logs, 1)
	assert.Equal(t, `"before"`, storage.logs[0].OldValue)
	assert.Equal(t, `"after"`, storage.logs[0].NewValue)
}
