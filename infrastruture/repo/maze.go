package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrMazeNotFound is returned when no maze matches the lookup.
var ErrMazeNotFound = errors.New("maze not found")

// MazeRepo handles the persistence of maze documents.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or merge-overwrites a maze document by its id.
func (r *MazeRepo) Save(maze *dmn.Maze) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": maze.ID}
	update := bson.M{
		"$set": bson.M{
			"name":      maze.Name,
			"creatorId": maze.CreatorID,
			"grid":      maze.Grid,
			"start":     maze.Start,
			"end":       maze.End,
			"createdAt": maze.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a maze by its ID.
// Returns ErrMazeNotFound if no document matches.
func (r *MazeRepo) ByID(id uuid.UUID) (*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var maze dmn.Maze
	if err := r.collection.FindOne(ctx, filter).Decode(&maze); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &maze, nil
}

// All retrieves every maze document, newest first.
func (r *MazeRepo) All() ([]*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}

	mazes := make([]*dmn.Maze, 0)
	if err := cursor.All(ctx, &mazes); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return mazes, nil
}

// Delete removes a maze by its id. Deleting a missing maze is a no-op.
func (r *MazeRepo) Delete(id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}
