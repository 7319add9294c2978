package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RunRepo handles the persistence of simulation runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts a completed or failed run. Runs are immutable once
// persisted; traces can grow large, so the insert gets a wider timeout
// than the other repositories.
func (r *RunRepo) Save(run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByID retrieves a run by its ID.
func (r *RunRepo) ByID(id uuid.UUID) (*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var run dmn.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("run not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &run, nil
}
