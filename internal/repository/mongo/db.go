package mongo

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The initial connect can succeed against an unresponsive server, so ping the primary.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection the service uses.
// Failures are logged and do not stop startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureBodyPartIndexes(ctx, db.Collection(bodyPartCollectionName))
	EnsureMuscleTestIndexes(ctx, db.Collection(muscleTestCollectionName))
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName), db.Collection(exerciseImageCollectionName))
	EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName), db.Collection(sessionTestCollectionName))
	EnsureGenerationErrorLogIndexes(ctx, db.Collection(generationErrorLogCollectionName))
}

func logIndexError(collection *mongo.Collection, err error) {
	slog.Warn("Failed to create indexes", "collection", collection.Name(), "error", err)
}
