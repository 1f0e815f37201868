package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/grimhallow/creaturedb/config"
	"github.com/grimhallow/creaturedb/pkg/mongodb"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "creaturedb"
	app.Usage = "Initialize the creatures database"
	app.Version = "0.1.0"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:   "mongo, m",
			Usage:  "connection string to mongo database",
			Value:  mongodb.DefaultURI,
			EnvVar: "MONGO_URI",
		},
		cli.StringFlag{
			Name:   "variant",
			Usage:  "bootstrap variant: 'admin' also creates the root user, 'monsters' only the collection",
			Value:  string(config.VariantAdmin),
			EnvVar: "CREATUREDB_VARIANT",
		},
		cli.DurationFlag{
			Name:  "wait",
			Usage: "how long to wait for the database server to come up",
			Value: mongodb.DefaultTimeout * 3,
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "server selection timeout of every database operation",
			Value: mongodb.DefaultTimeout,
		},
	}

	app.Before = func(c *cli.Context) error {
		if !c.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "create the admin user, the creatures collection and its indexes",
			Action: cmdInit,
		},
		{
			Name:   "status",
			Usage:  "check the creatures collection and its indexes are in place",
			Action: cmdStatus,
		},
	}
	// the container entrypoint runs the binary without arguments
	app.Action = cmdInit

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("creaturedb failed")
	}
}
