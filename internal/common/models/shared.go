package models

import "time"

// Log is the persisted shape of an application log line, written by the async
// Mongo sink in internal/logger.
type Log struct {
	Message      string    `bson:"message" json:"message"`
	IpAddress    string    `bson:"ip_address" json:"ip_address"`
	ActorID      string    `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	DocumentID   string    `bson:"document_id,omitempty" json:"document_id,omitempty"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
