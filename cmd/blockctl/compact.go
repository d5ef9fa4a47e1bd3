package main

import (
	"fmt"

	"github.com/blockkit/blockkit/block"
	"github.com/blockkit/blockkit/snapshot"
	"github.com/spf13/cobra"
)

var compactCodec string

func init() {
	rootCmd.AddCommand(newCompactCmd())
}

func newCompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact <in> <out>",
		Short: "Rewrite a blob into an exact-fit snapshot",
		Long: `The compact command loads a blob (or snapshot), copies it into a fresh
block sized exactly to its used space, and writes the result as a snapshot.
Live data is preserved; slack capacity is dropped. Bytes dead inside the
used prefix (cleared strings, shrunk lists) travel with the copy — the
format has no reclamation, only exact-fit copies.

Example:
  blockctl compact contacts.blob contacts.snap
  blockctl compact contacts.snap small.snap --codec zstd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(args)
		},
	}
	cmd.Flags().StringVar(&compactCodec, "codec", "none", "Snapshot compression: none, lz4, zstd")
	return cmd
}

func runCompact(args []string) error {
	codec, err := snapshot.ParseCodec(compactCodec)
	if err != nil {
		return fmt.Errorf("bad --codec %q: %w", compactCodec, err)
	}

	src, _, err := loadAny(args[0])
	if err != nil {
		return err
	}

	dst, err := block.NewCopy(src)
	if err != nil {
		return fmt.Errorf("copying block: %w", err)
	}

	if err := snapshot.Save(args[1], dst, codec); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	printInfo("Compacted %s (%d bytes capacity) into %s (%d bytes used)\n",
		args[0], src.Capacity(), args[1], dst.UsedSpace())
	return nil
}
