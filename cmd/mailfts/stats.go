package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "print store operation counters",
	Action: func(c *cli.Context) error {
		snap := store.Stats.Snapshot()
		fmt.Printf("writes:          %d\n", snap.Writes)
		fmt.Printf("batches flushed: %d\n", snap.BatchesFlushed)
		fmt.Printf("clears:          %d\n", snap.Clears)
		fmt.Printf("iterations:      %d\n", snap.Iterations)
		fmt.Printf("keys stored:     %d\n", store.Len())
		return nil
	},
}
