package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta is the slice of document metadata the workflow engine needs: enough to
// label the Draft stage. Document content, versions and files live elsewhere.
type Meta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	CreatedBy string             `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
