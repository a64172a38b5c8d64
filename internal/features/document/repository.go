package document

import (
	"context"

	"github.com/dancan-sandys/isomanagement/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentRepository is a read-only view of the document-management
// collaborator. Missing documents come back as (nil, nil) so callers can fall
// back gracefully; only genuine backend failures surface as errors.
type DocumentRepository interface {
	GetMeta(ctx context.Context, documentID string) (*Meta, error)
}

type DocumentRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewDocumentRepository(mongodb *database.MongodbDB) DocumentRepository {
	return &DocumentRepositoryImpl{
		Collection: mongodb.DB.Collection("documents"),
	}
}

func (r *DocumentRepositoryImpl) GetMeta(ctx context.Context, documentID string) (*Meta, error) {
	oid, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, nil
	}
	var meta Meta
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&meta)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}
