package bootstrap

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/grimhallow/creaturedb/config"
	"github.com/grimhallow/creaturedb/pkg/creatures/types"
)

const (
	// AdminDatabase is the database holding server wide principals
	AdminDatabase = "admin"
	// RootRole grants every privilege on every database
	RootRole = "root"
)

// names of the steps reported in errors and logs
const (
	StepConnect          = "connect"
	StepValidate         = "validate settings"
	StepCreateUser       = "create admin user"
	StepCreateCollection = "create collection"
	StepCreateIndexes    = "create indexes"
)

type (
	// Server is a session to a database server
	Server interface {
		// Database returns a handle on the named database. The database
		// only comes into existence on its first write.
		Database(name string) Database
	}

	// Database is the set of server operations the bootstrap relies on
	Database interface {
		Name() string
		CreateUser(ctx context.Context, user User) error
		CreateCollection(ctx context.Context, name string) error
		CreateIndexes(ctx context.Context, collection string, indexes []types.IndexSpec) ([]string, error)
		ListCollections(ctx context.Context) ([]string, error)
		ListIndexes(ctx context.Context, collection string) ([]types.IndexSpec, error)
	}

	// Role assigned to a user, scoped to a database
	Role struct {
		Role string `bson:"role"`
		DB   string `bson:"db"`
	}

	// User is a principal to create on the server
	User struct {
		Name     string
		Password string
		Roles    []Role
	}
)

// RootUser builds the administrative principal described by s
func RootUser(s config.Settings) User {
	return User{
		Name:     s.AdminUsername,
		Password: s.AdminPassword,
		Roles:    []Role{{Role: RootRole, DB: AdminDatabase}},
	}
}

// Run initializes the server: admin user (admin variant only), the
// application database, the creatures collection and its indexes.
// Steps run in order and the first failure is returned as is, nothing
// already created is undone.
func Run(ctx context.Context, srv Server, s config.Settings) error {
	if err := s.Valid(); err != nil {
		return &StepError{Step: StepValidate, kind: ErrInvalidConfig, err: err}
	}

	if s.CreatesAdmin() {
		admin := srv.Database(AdminDatabase)
		log.Info().Str("user", s.AdminUsername).Str("database", admin.Name()).Msg("creating admin user")
		if err := admin.CreateUser(ctx, RootUser(s)); err != nil {
			return Classify(StepCreateUser, err)
		}
	}

	db := srv.Database(s.Database)

	log.Info().Str("database", db.Name()).Str("collection", types.CreatureCollection).Msg("creating collection")
	if err := db.CreateCollection(ctx, types.CreatureCollection); err != nil {
		return Classify(StepCreateCollection, err)
	}

	names, err := db.CreateIndexes(ctx, types.CreatureCollection, types.Indexes())
	if err != nil {
		return Classify(StepCreateIndexes, err)
	}
	log.Info().Strs("indexes", names).Msg("indexes created")

	return nil
}
