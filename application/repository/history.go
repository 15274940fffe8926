package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"skinsense.io/application/utils"
	"skinsense.io/entities"
	"skinsense.io/infrastructure/database/connection/datastore"
	"skinsense.io/infrastructure/database/repository/mongo"
)

var historyOnce = sync.Once{}

var historyRepository HistoryRepository

// HistoryRepository holds the history queries used by the history service.
type HistoryRepository struct {
	mongo.MongoRepository[entities.History]
}

func HistoryRepo() *HistoryRepository {
	historyOnce.Do(func() {
		historyRepository = HistoryRepository{mongo.MongoRepository[entities.History]{Model: datastore.HistoryModel}}
	})
	return &historyRepository
}

func (r *HistoryRepository) FindByUserAndHash(ctx context.Context, userEmail, imageHash string) (*entities.History, error) {
	return r.FindOneByFilter(ctx, bson.M{"userEmail": userEmail, "imageHash": imageHash})
}

// idFilter matches both ULID ids and the ObjectId ids of entries written
// before ids were generated by this service.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*entities.History, error) {
	return r.FindOneByFilter(ctx, idFilter(id))
}

func (r *HistoryRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	return r.DeleteOneByFilter(ctx, idFilter(id))
}

func (r *HistoryRepository) Create(ctx context.Context, history entities.History) (*entities.History, error) {
	return r.CreateOne(ctx, history)
}

// ListByUser returns a page of a user's history, newest first, without the
// image hash copy kept inside analysisData.
func (r *HistoryRepository) ListByUser(ctx context.Context, userEmail string, skip, limit int64) ([]entities.History, error) {
	results, err := r.FindMany(ctx, bson.M{"userEmail": userEmail}, &mongo.FindOptions{
		Projection: bson.M{"analysisData.image_hash": 0},
		Sort:       bson.D{{Key: "timestamp", Value: -1}},
		Skip:       utils.GetInt64Pointer(skip),
		Limit:      utils.GetInt64Pointer(limit),
	})
	if err != nil {
		return nil, err
	}
	return *results, nil
}

func (r *HistoryRepository) CountByUser(ctx context.Context, userEmail string) (int64, error) {
	return r.CountDocs(ctx, bson.M{"userEmail": userEmail})
}

func (r *HistoryRepository) GradeDistribution(ctx context.Context, userEmail string) ([]entities.GradeCount, error) {
	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: bson.M{"userEmail": userEmail}}},
		{{Key: "$group", Value: bson.M{"_id": "$skinGrade", "count": bson.M{"$sum": 1}}}},
	}
	distribution := []entities.GradeCount{}
	if err := r.Aggregate(ctx, pipeline, &distribution); err != nil {
		return nil, err
	}
	return distribution, nil
}

func (r *HistoryRepository) Latest(ctx context.Context, userEmail string) (*entities.History, error) {
	results, err := r.FindMany(ctx, bson.M{"userEmail": userEmail}, &mongo.FindOptions{
		Projection: bson.M{"skinGrade": 1, "overallCondition": 1, "timestamp": 1},
		Sort:       bson.D{{Key: "timestamp", Value: -1}},
		Limit:      utils.GetInt64Pointer(1),
	})
	if err != nil || len(*results) == 0 {
		return nil, err
	}
	return &(*results)[0], nil
}
