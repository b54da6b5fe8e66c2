package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"examportal/internal/model"
)

// ArchiveRepo keeps a copy of every exported report document in MongoDB so
// past exports stay retrievable after download.
type ArchiveRepo interface {
	Save(ctx context.Context, doc *model.ExportDocument) (string, error)
	ListByKind(ctx context.Context, kind model.ExportKind) ([]*model.ExportDocument, error)
}

type archiveRepo struct {
	collection *mongo.Collection
}

// NewArchiveRepo creates a new export archive repository
func NewArchiveRepo(db *mongo.Database) ArchiveRepo {
	return &archiveRepo{
		collection: db.Collection("export_archive"),
	}
}

func (r *archiveRepo) Save(ctx context.Context, doc *model.ExportDocument) (string, error) {
	if doc.ExportedAt.IsZero() {
		doc.ExportedAt = time.Now()
	}
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (r *archiveRepo) ListByKind(ctx context.Context, kind model.ExportKind) ([]*model.ExportDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "exportedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.ExportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
