package repositories

import (
	"context"
	"errors"
	"fmt"

	"planit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	plannersCollection = "planners"
	vendorsCollection  = "vendors"
)

// MongoStore is the document ProfileStore. Planners and vendors reference
// their owner by the user's hex id; nothing but the unique indexes created
// by EnsureIndexes keeps those references consistent.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

var _ ProfileStore = (*MongoStore)(nil)

// EnsureIndexes creates the unique indexes backing email and owner uniqueness.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]mongo.IndexModel{
		usersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		plannersCollection: {
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user"),
		},
		vendorsCollection: {
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user"),
		},
	}
	for name, model := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func objectID(id models.ID) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func translateMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func setIfField[T any](set bson.D, key string, f models.Field[T]) bson.D {
	if f.Set {
		set = append(set, bson.E{Key: key, Value: f.Value})
	}
	return set
}

// findOneAndSet applies $set (plus updatedAt) to the document with id oid and decodes the result into out.
func (s *MongoStore) findOneAndSet(ctx context.Context, collection string, oid primitive.ObjectID, set bson.D, out any) error {
	set = append(set, bson.E{Key: "updatedAt", Value: now()})
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).
		Decode(out)
	return translateMongoError(err)
}

// oldestFirst makes the earliest duplicate canonical when several profiles share an owner.
func oldestFirst() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}
