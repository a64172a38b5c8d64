package audit

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionSubmit         AuditAction = "SUBMIT"
	AuditActionApprove        AuditAction = "APPROVE"
	AuditActionReject         AuditAction = "REJECT"
	AuditActionRequestChanges AuditAction = "REQUEST_CHANGES"
)

// AuditEntry is one record of the approval decision trail. Entries are
// append-only; nothing in this service updates or deletes them.
type AuditEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentID string             `bson:"document_id" json:"document_id"`
	StepID     string             `bson:"step_id,omitempty" json:"step_id,omitempty"`
	StepName   string             `bson:"step_name,omitempty" json:"step_name,omitempty"`
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	Action     AuditAction        `bson:"action" json:"action"`
	Comments   string             `bson:"comments,omitempty" json:"comments,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
