package mongodb

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/grimhallow/creaturedb/pkg/bootstrap"
)

const (
	// DefaultURI of a local mongod
	DefaultURI = "mongodb://localhost:27017"
	// DefaultTimeout bounds server selection of every operation
	DefaultTimeout = 10 * time.Second

	appName = "creaturedb"
)

// Options to connect to the database server
type Options struct {
	URI string
	// Timeout is the server selection timeout
	Timeout time.Duration
	// Wait is how long to keep retrying while the server comes up.
	// Zero means a single attempt.
	Wait time.Duration
}

func (o Options) clientOptions() *options.ClientOptions {
	uri := o.URI
	if uri == "" {
		uri = DefaultURI
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
}

// Connect creates a client and makes sure the primary answers. Failing
// to reach it is reported as bootstrap.ErrUnreachable.
func Connect(ctx context.Context, o Options) (*mongo.Client, error) {
	client, err := mongo.NewClient(o.clientOptions())
	if err != nil {
		return nil, errors.Wrap(err, "invalid connection options")
	}

	if err := client.Connect(ctx); err != nil {
		return nil, bootstrap.Unreachable(err)
	}

	if err := waitPrimary(ctx, client, o.Wait); err != nil {
		Disconnect(context.Background(), client)
		return nil, bootstrap.Unreachable(err)
	}

	return client, nil
}

// Disconnect closes client, failures are logged at debug level
func Disconnect(ctx context.Context, client *mongo.Client) {
	if err := client.Disconnect(ctx); err != nil {
		log.Debug().Err(err).Msg("failed to disconnect from database")
	}
}

func waitPrimary(ctx context.Context, client *mongo.Client, wait time.Duration) error {
	ping := func() error {
		err := client.Ping(ctx, readpref.Primary())
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	if wait <= 0 {
		return ping()
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = wait
	bo.MaxInterval = time.Second * 2

	return backoff.RetryNotify(ping, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		log.Debug().Err(err).Dur("retry_in", next).Msg("database server not ready")
	})
}
