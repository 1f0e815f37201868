package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v2"

	"github.com/grimhallow/creaturedb/config"
	"github.com/grimhallow/creaturedb/pkg/bootstrap"
	"github.com/grimhallow/creaturedb/pkg/mongodb"
)

// errIncomplete is returned by status when the layout is not in place
var errIncomplete = errors.New("creatures collection is not fully initialized")

func loadSettings(c *cli.Context) (config.Settings, error) {
	variant, err := config.ParseVariant(c.GlobalString("variant"))
	if err != nil {
		return config.Settings{}, err
	}

	return config.FromEnv(variant)
}

func connect(ctx context.Context, c *cli.Context) (*mongo.Client, error) {
	return mongodb.Connect(ctx, mongodb.Options{
		URI:     c.GlobalString("mongo"),
		Timeout: c.GlobalDuration("timeout"),
		Wait:    c.GlobalDuration("wait"),
	})
}

func cmdInit(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	log.Debug().Str("settings", s.String()).Msg("settings loaded")

	ctx := context.Background()
	client, err := connect(ctx, c)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer mongodb.Disconnect(ctx, client)

	if err := bootstrap.Run(ctx, bootstrap.NewMongoServer(client), s); err != nil {
		return errors.Wrap(err, "bootstrap failed")
	}

	log.Info().Str("database", s.Database).Msg("database initialized")
	return nil
}

func cmdStatus(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := connect(ctx, c)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer mongodb.Disconnect(ctx, client)

	report, err := bootstrap.Inspect(ctx, bootstrap.NewMongoServer(client), s)
	if err != nil {
		return errors.Wrap(err, "failed to inspect database")
	}

	if err := yaml.NewEncoder(os.Stdout).Encode(report); err != nil {
		log.Error().Err(err).Msg("failed to print report")
	}

	if !report.Complete() {
		return errIncomplete
	}
	return nil
}
