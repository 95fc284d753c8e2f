package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/omoide-app/backend/internal/apperr"
	"github.com/omoide-app/backend/internal/models"
)

// MongoPostStore implements PostStore on the "posts" collection.
type MongoPostStore struct {
	col *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{col: db.Collection("posts")}
}

func (s *MongoPostStore) Insert(ctx context.Context, p *models.Post) error {
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (s *MongoPostStore) FindByLink(ctx context.Context, link string) (*models.Post, error) {
	var p models.Post
	err := s.col.FindOne(ctx, bson.M{"link": link}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) UpdateByLinkAndOwner(ctx context.Context, link string, owner primitive.ObjectID, patch PostPatch) (*models.Post, error) {
	filter := bson.M{"link": link, "userId": owner}
	update := bson.M{"$set": bson.M{
		"title":     patch.Title,
		"content":   patch.Content,
		"category":  patch.Category,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) DeleteByLinkAndOwner(ctx context.Context, link string, owner primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.col.FindOneAndDelete(ctx, bson.M{"link": link, "userId": owner}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"userId": owner})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoPostStore) CountByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"userId": owner})
}

func (s *MongoPostStore) IncrementLikes(ctx context.Context, link string) (*models.Post, error) {
	return s.increment(ctx, link, "likes")
}

func (s *MongoPostStore) IncrementReads(ctx context.Context, link string) (*models.Post, error) {
	return s.increment(ctx, link, "reads")
}

// increment bumps a counter with $inc so concurrent requests never lose
// updates, and returns the post as of after the bump.
func (s *MongoPostStore) increment(ctx context.Context, link, field string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"link": link}, bson.M{"$inc": bson.M{field: 1}}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPostStore) List(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	filter := bson.M{}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if !opts.OwnerID.IsZero() {
		filter["userId"] = opts.OwnerID
	}

	findOpts := options.Find()
	if opts.SortBy != "" {
		findOpts.SetSort(bson.M{string(opts.SortBy): -1})
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	return s.find(ctx, filter, findOpts)
}

func (s *MongoPostStore) Search(ctx context.Context, text string) ([]models.Post, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"content": re},
	}}
	return s.find(ctx, filter, options.Find())
}

func (s *MongoPostStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
