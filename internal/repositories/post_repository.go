package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aurafeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post document operations
type PostRepository interface {
	CreatePost(ctx context.Context, doc *models.PostDocument) error
	GetPostByID(ctx context.Context, id string) (*models.PostDocument, error)
	ListRecent(ctx context.Context, skip, limit int64) ([]models.PostDocument, error)
	ListRecentByAuthors(ctx context.Context, authorIDs []string, skip, limit int64) ([]models.PostDocument, error)
	ListRecentByIDs(ctx context.Context, ids []string, skip, limit int64) ([]models.PostDocument, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.PostDocument, error)
	SetAttachmentURL(ctx context.Context, id, path string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost inserts a new post document and fills in its generated ID
func (r *MongoPostRepository) CreatePost(ctx context.Context, doc *models.PostDocument) error {
	doc.ID = primitive.NewObjectID()
	if doc.PostedAt.IsZero() {
		doc.PostedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// GetPostByID retrieves a post document by ID. Returns (nil, nil) when no
// document exists so callers can distinguish "absent" from "failed".
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.PostDocument, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var raw bson.M
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	doc, err := models.PostDocumentFromRaw(raw)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListRecent retrieves post documents ordered by posted_at descending
func (r *MongoPostRepository) ListRecent(ctx context.Context, skip, limit int64) ([]models.PostDocument, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

// ListRecentByAuthors retrieves recent post documents authored by any of
// the given profile IDs
func (r *MongoPostRepository) ListRecentByAuthors(ctx context.Context, authorIDs []string, skip, limit int64) ([]models.PostDocument, error) {
	if len(authorIDs) == 0 {
		return []models.PostDocument{}, nil
	}
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, skip, limit)
}

// ListRecentByIDs retrieves recent post documents from the given ID set
func (r *MongoPostRepository) ListRecentByIDs(ctx context.Context, ids []string, skip, limit int64) ([]models.PostDocument, error) {
	objIDs, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(objIDs) == 0 {
		return []models.PostDocument{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, skip, limit)
}

// ListByIDs retrieves post documents for the given IDs without pagination
// or a guaranteed order; callers reorder as needed
func (r *MongoPostRepository) ListByIDs(ctx context.Context, ids []string) ([]models.PostDocument, error) {
	objIDs, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(objIDs) == 0 {
		return []models.PostDocument{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeAll(ctx, cursor)
}

// SetAttachmentURL updates the legacy single-attachment path on a post
func (r *MongoPostRepository) SetAttachmentURL(ctx context.Context, id, path string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"attachment_url": path}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post not found")
	}
	return nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.PostDocument, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "posted_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeAll(ctx, cursor)
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]models.PostDocument, error) {
	docs := []models.PostDocument{}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		doc, err := models.PostDocumentFromRaw(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid post ID format: %w", err)
		}
		objIDs = append(objIDs, objID)
	}
	return objIDs, nil
}
