package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/mailfts/internal/fts"
)

var removeCommand = &cli.Command{
	Name:      "remove",
	Usage:     "clear postings for the given document ids under one account",
	ArgsUsage: "<account-id> <doc-id>...",
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return fmt.Errorf("usage: mailfts remove <account-id> <doc-id>...")
		}

		accountID, err := parseUint32(c.Args().Get(0))
		if err != nil {
			return fmt.Errorf("account-id: %w", err)
		}

		var docIDs []uint32
		for _, arg := range c.Args().Slice()[1:] {
			id, err := parseUint32(arg)
			if err != nil {
				return fmt.Errorf("doc-id %q: %w", arg, err)
			}
			docIDs = append(docIDs, id)
		}

		if err := indexer.Remove(c.Context, accountID, mailCollection, fts.NewDocumentSet(docIDs...)); err != nil {
			return err
		}
		fmt.Printf("removed %d documents from account %d\n", len(docIDs), accountID)
		return nil
	},
}
