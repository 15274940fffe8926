package datastore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skinsense.io/infrastructure/env"
	"skinsense.io/infrastructure/logger"
)

// HistoryCollectionName is shared with entries saved by the previous backend,
// whose ids are ObjectIds rather than ULIDs.
const HistoryCollectionName = "histories"

var (
	client       *mongo.Client
	HistoryModel *mongo.Collection
)

// ConnectToDatabase connects to mongo and prepares collections. It returns
// false when no database is configured or reachable; the service still runs
// without history endpoints in that case.
func ConnectToDatabase() bool {
	url := env.GetString("DB_URL", "")
	if url == "" {
		logger.Error("mongo url missing")
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return false
	}
	if err := c.Ping(ctx, nil); err != nil {
		logger.Warning("mongodb is not reachable", logger.LoggerOptions{Key: "error", Data: err})
		_ = c.Disconnect(context.Background())
		return false
	}
	client = c

	db := client.Database(env.GetString("DB_NAME", "skinsense"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
	return true
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	HistoryModel = db.Collection(HistoryCollectionName)
	_, err := HistoryModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "userEmail", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "skinGrade", Value: 1}},
		Options: options.Index(),
	}, {
		Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "imageHash", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})
	if err != nil {
		logger.Warning("could not create history indexes", logger.LoggerOptions{Key: "error", Data: err})
		return
	}

	logger.Info("mongodb indexes set up successfully")
}

// CleanUp disconnects the mongo client if one was opened.
func CleanUp() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
		return
	}
	logger.Info("disconnected from mongodb")
}
