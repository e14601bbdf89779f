package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/mailfts/internal/doclock"
	"github.com/standardbeagle/mailfts/internal/fts"
)

var docLocks = doclock.NewSet()

// documentIDFor derives a stable uint32 document id from a message's path,
// so re-indexing the same file always targets the same postings.
func documentIDFor(path string) uint32 {
	return uint32(xxhash.Sum64String(path))
}

var indexCommand = &cli.Command{
	Name:      "index",
	Usage:     "scan a maildir and index every message under new/ and cur/",
	ArgsUsage: "<maildir> <account-id>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 2 {
			return fmt.Errorf("usage: mailfts index <maildir> <account-id>")
		}
		root := c.Args().Get(0)
		accountID, err := parseUint32(c.Args().Get(1))
		if err != nil {
			return fmt.Errorf("account-id: %w", err)
		}

		var paths []string
		for _, sub := range []string{"new", "cur"} {
			dir := filepath.Join(root, sub)
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					paths = append(paths, filepath.Join(dir, entry.Name()))
				}
			}
		}

		ctx := c.Context
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.NumCPU())

		for _, path := range paths {
			path := path
			g.Go(func() error {
				return indexMessageFile(gctx, accountID, path)
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
		fmt.Printf("indexed %d messages from %s\n", len(paths), root)
		return nil
	},
}

func indexMessageFile(ctx context.Context, accountID uint32, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	documentID := documentIDFor(path)
	unlock := docLocks.Lock(accountID, mailCollection, documentID)
	defer unlock()

	doc := fts.WithDefaultLanguage(fts.LangEnglish).
		WithAccountID(accountID).
		WithCollection(mailCollection).
		WithDocumentID(documentID).
		Index(fts.FieldBody, string(content), fts.LangUnknown)

	return indexer.Index(ctx, doc)
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
