package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var dumpAll bool

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump a blob's used prefix",
		Long: `The dump command prints a hex dump of a blob's used space. Snapshots
are decompressed and verified first.

Example:
  blockctl dump contacts.blob
  blockctl dump contacts.snap --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	cmd.Flags().BoolVar(&dumpAll, "all", false, "Dump the full capacity, not just used space")
	return cmd
}

func runDump(args []string) error {
	b, _, err := loadAny(args[0])
	if err != nil {
		return err
	}

	end := b.UsedSpace()
	if dumpAll {
		end = b.Capacity()
	}
	fmt.Print(hex.Dump(b.Bytes()[:end]))
	return nil
}
