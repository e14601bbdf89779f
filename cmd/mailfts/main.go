// Command mailfts drives the full-text indexing core from the command
// line: one-shot indexing and removal of maildir messages, a persistent
// watch mode, and basic store statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/mailfts/internal/config"
	"github.com/standardbeagle/mailfts/internal/fts"
	"github.com/standardbeagle/mailfts/internal/kvstore"
	"github.com/standardbeagle/mailfts/internal/language"
)

// mailCollection is the collection byte every CLI-indexed message lives
// under; the CLI models a single mailbox collection per account.
const mailCollection uint8 = 0

var (
	store   *kvstore.InstrumentedStore
	indexer *fts.Indexer
)

func buildIndexer(cfg *config.Config) *fts.Indexer {
	return fts.NewIndexer(
		store,
		language.NewDetector,
		language.NewTokenizer(),
		language.NewPorterStemmer(),
		fts.WithMaxTokenLength(cfg.MaxTokenLength),
		fts.WithMinLanguageScore(cfg.MinLanguageScore),
	)
}

func main() {
	app := &cli.App{
		Name:  "mailfts",
		Usage: "full-text indexing core for a mail store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: ".mailfts.kdl",
				Usage: "config file path",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if err := config.NewValidator().ValidateAndSetDefaults(cfg); err != nil {
				return err
			}

			store = kvstore.NewInstrumented()
			indexer = buildIndexer(cfg)
			c.App.Metadata = map[string]interface{}{"config": cfg}
			return nil
		},
		Commands: []*cli.Command{
			indexCommand,
			removeCommand,
			watchCommand,
			verifyCommand,
			statsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "mailfts:", err)
		os.Exit(1)
	}
	if store != nil {
		store.Close()
	}
}

func configFrom(c *cli.Context) *config.Config {
	return c.App.Metadata["config"].(*config.Config)
}

// signalContext returns a context canceled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
