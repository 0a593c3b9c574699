package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/careercraft/careercraft/config"
	"github.com/careercraft/careercraft/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultCollection = "users"
	DefaultTimeout    = 10 * time.Second
)

// MongoUserRepository stores credential records in a MongoDB collection
// with a unique index on username.
type MongoUserRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoUserRepository connects to MongoDB and ensures the username index.
func NewMongoUserRepository(ctx context.Context, cfg *config.MongoDBConfig) (*MongoUserRepository, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("mongodb dsn cannot be empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	collName := cfg.Collection
	if collName == "" {
		collName = DefaultCollection
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	repo := &MongoUserRepository{
		client:     client,
		collection: client.Database(cfg.DatabaseName).Collection(collName),
		timeout:    timeout,
	}
	if err := repo.ensureIndices(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Load returns every credential record keyed by username.
func (r *MongoUserRepository) Load(ctx context.Context) (map[string]models.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(opCtx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users from MongoDB: %w", err)
	}
	defer cursor.Close(opCtx)

	users := map[string]models.User{}
	for cursor.Next(opCtx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user record: %w", err)
		}
		users[user.Username] = user
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error listing users: %w", err)
	}
	return users, nil
}

// Get retrieves a single record, nil when the username is unknown.
func (r *MongoUserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(opCtx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	return &user, nil
}

// Add inserts a new record. The unique index turns a duplicate insert into
// models.ErrUserExists.
func (r *MongoUserRepository) Add(ctx context.Context, user models.User) error {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.InsertOne(opCtx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrUserExists, user.Username)
		}
		return fmt.Errorf("failed to add user to MongoDB: %w", err)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (r *MongoUserRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoUserRepository) ensureIndices(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(opCtx, indexModel); err != nil {
		return fmt.Errorf("failed to ensure username index: %w", err)
	}
	return nil
}
