package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mitre88/go-on-line/internal/domain/game"
)

const gamesCollection = "games"

// MongoArchiveStorage stores finished sessions, one document per game.
type MongoArchiveStorage struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewMongoArchiveStorage(log *zap.SugaredLogger, db *mongo.Database) *MongoArchiveStorage {
	return &MongoArchiveStorage{log: log, mongo: db}
}

func (g *MongoArchiveStorage) ArchiveGame(ctx context.Context, session game.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, session, opts); err != nil {
		return fmt.Errorf("archive game %s: %w", session.ID, err)
	}

	g.log.Infof("game archived with id: %s", session.ID)
	return nil
}

func (g *MongoArchiveStorage) ListArchivedGames(ctx context.Context, pageNum, pageLimit int) (*game.ArchiveResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := g.mongo.Collection(gamesCollection)
	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count archived games: %w", err)
	}

	totalPages := (int(total) + pageLimit - 1) / pageLimit
	start, end := pageBounds(pageNum, pageLimit, int(total))
	if start == end {
		return &game.ArchiveResponse{PageNum: pageNum, TotalPages: totalPages, Games: []game.Session{}}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "finished_at", Value: -1}}).
		SetSkip(int64(start)).
		SetLimit(int64(end - start))

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find archived games: %w", err)
	}
	defer cursor.Close(ctx)

	games := make([]game.Session, 0, pageLimit)
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("decode archived games: %w", err)
	}

	return &game.ArchiveResponse{
		PageNum:    pageNum,
		TotalPages: totalPages,
		Games:      games,
	}, nil
}
