package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var verifyCommand = &cli.Command{
	Name:      "verify",
	Usage:     "check that every stored posting for an account deserializes cleanly",
	ArgsUsage: "<account-id>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return fmt.Errorf("usage: mailfts verify <account-id>")
		}
		accountID, err := parseUint32(c.Args().Get(0))
		if err != nil {
			return fmt.Errorf("account-id: %w", err)
		}

		checked, err := indexer.Verify(c.Context, accountID)
		if err != nil {
			return fmt.Errorf("verified %d postings before failure: %w", checked, err)
		}
		fmt.Printf("verified %d postings for account %d\n", checked, accountID)
		return nil
	},
}
