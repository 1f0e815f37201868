package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grimhallow/creaturedb/pkg/creatures/types"
)

// MongoServer implements Server on top of a connected mongo client
type MongoServer struct {
	client *mongo.Client
}

// NewMongoServer wraps client, the caller keeps ownership of the connection
func NewMongoServer(client *mongo.Client) *MongoServer {
	return &MongoServer{client: client}
}

// Database implements Server
func (s *MongoServer) Database(name string) Database {
	return &mongoDatabase{db: s.client.Database(name)}
}

type mongoDatabase struct {
	db *mongo.Database
}

func (d *mongoDatabase) Name() string {
	return d.db.Name()
}

func (d *mongoDatabase) CreateUser(ctx context.Context, user User) error {
	roles := bson.A{}
	for _, r := range user.Roles {
		roles = append(roles, r)
	}

	cmd := bson.D{
		{Key: "createUser", Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: roles},
	}
	return d.db.RunCommand(ctx, cmd).Err()
}

func (d *mongoDatabase) CreateCollection(ctx context.Context, name string) error {
	return d.db.RunCommand(ctx, bson.D{{Key: "create", Value: name}}).Err()
}

func (d *mongoDatabase) CreateIndexes(ctx context.Context, collection string, indexes []types.IndexSpec) ([]string, error) {
	return types.Setup(ctx, d.db, collection, indexes)
}

func (d *mongoDatabase) ListCollections(ctx context.Context) ([]string, error) {
	return d.db.ListCollectionNames(ctx, bson.D{})
}

func (d *mongoDatabase) ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error) {
	cur, err := d.db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var indexes []types.IndexSpec
	if err := cur.All(ctx, &indexes); err != nil {
		return nil, err
	}

	return indexes, nil
}
