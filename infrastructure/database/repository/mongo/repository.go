package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skinsense.io/infrastructure/logger"
)

// ErrDuplicate is returned by CreateOne when a unique index rejects the document.
var ErrDuplicate = errors.New("document already exists")

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	parsed := payload.ParseModel().(*T)
	if _, err := repo.Model.InsertOne(ctx, parsed); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

// FindOneByFilter returns nil, nil when nothing matches.
func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var result T
	err := repo.Model.FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter bson.M, opts *FindOptions) (*[]T, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.Projection != nil {
			findOpts.SetProjection(opts.Projection)
		}
		if opts.Sort != nil {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Skip != nil {
			findOpts.SetSkip(*opts.Skip)
		}
		if opts.Limit != nil {
			findOpts.SetLimit(*opts.Limit)
		}
	}
	cursor, err := repo.Model.Find(ctx, filter, findOpts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(ctx context.Context, filter bson.M) (int64, error) {
	count, err := repo.Model.CountDocuments(ctx, filter)
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return count, err
}

func (repo *MongoRepository[T]) DeleteOneByFilter(ctx context.Context, filter bson.M) (int64, error) {
	result, err := repo.Model.DeleteOne(ctx, filter)
	if err != nil {
		logger.Error("mongo error occured while running DeleteOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

// Aggregate decodes every pipeline output document into results, which must be a pointer to a slice.
func (repo *MongoRepository[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := repo.Model.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("mongo error occured while running Aggregate", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	return cursor.All(ctx, results)
}
