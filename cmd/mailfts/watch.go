package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/mailfts/internal/fts"
	"github.com/standardbeagle/mailfts/internal/mailwatch"
)

// cliMessageLoader adapts the running indexer into mailwatch.MessageLoader,
// assigning document ids the same way the one-shot index command does so
// a file's postings key stays stable across a watch-then-reindex cycle.
type cliMessageLoader struct {
	accountID uint32
}

func (l *cliMessageLoader) Load(path string) (*mailwatch.IndexRequest, error) {
	documentID := documentIDFor(path)
	return &mailwatch.IndexRequest{
		AccountID:  l.accountID,
		Collection: mailCollection,
		DocumentID: documentID,
		Index: func(ctx context.Context) error {
			return indexMessageFile(ctx, l.accountID, path)
		},
	}, nil
}

var watchCommand = &cli.Command{
	Name:      "watch",
	Usage:     "watch a maildir and index/remove messages as they arrive or disappear",
	ArgsUsage: "<maildir> <account-id>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return fmt.Errorf("usage: mailfts watch <maildir> <account-id>")
		}
		root := c.Args().Get(0)
		accountID, err := parseUint32(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("account-id: %w", err)
		}

		cfg := configFrom(c)
		loader := &cliMessageLoader{accountID: accountID}

		w, err := mailwatch.New(
			[]string{root},
			loader,
			mailwatch.WithExclude(cfg.Exclude),
			mailwatch.WithRemoveFunc(func(ctx context.Context, path string) error {
				documentID := documentIDFor(path)
				return indexer.Remove(ctx, accountID, mailCollection, fts.NewDocumentSet(documentID))
			}),
		)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, cancel := signalContext()
		defer cancel()

		fmt.Printf("watching %s for account %d (ctrl-c to stop)\n", root, accountID)
		return w.Run(ctx)
	},
}
