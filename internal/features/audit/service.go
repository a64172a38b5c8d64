package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditService interface {
	Record(ctx context.Context, entry AuditEntry) error
	Trail(ctx context.Context, documentID string) ([]AuditEntry, error)
}

type AuditServiceImpl struct {
	Repo AuditRepository
}

func NewAuditService(repo AuditRepository) AuditService {
	return &AuditServiceImpl{Repo: repo}
}

func (s *AuditServiceImpl) Record(ctx context.Context, entry AuditEntry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return s.Repo.Create(ctx, entry)
}

func (s *AuditServiceImpl) Trail(ctx context.Context, documentID string) ([]AuditEntry, error) {
	return s.Repo.ListByDocument(ctx, documentID)
}
