package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/fairway-labs/looper/app"
	catalogservice "github.com/fairway-labs/looper/app/modules/catalog/application"
	"github.com/fairway-labs/looper/config"
)

func main() {
	cliApp := &cli.App{
		Name:  "looper",
		Usage: "multiplayer golf game scoring service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"LOOPER_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the scoring service",
				Action: serve,
			},
			{
				Name:      "validate-catalog",
				Usage:     "compile every rule expression in a catalog directory",
				ArgsUsage: "<dir>",
				Action:    validateCatalog,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

func validateCatalog(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return cli.Exit("usage: looper validate-catalog <dir>", 2)
	}

	specs, err := catalogservice.LoadDir(dir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, spec := range specs {
		fmt.Printf("%s v%d ok (%d options)\n", spec.Key, spec.Version, len(spec.Options))
	}
	fmt.Printf("%d specs validated\n", len(specs))
	return nil
}
