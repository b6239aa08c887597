package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pagekit/heap/geometry"
)

func init() {
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newBucketCmd())
}

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <bytes>...",
		Short: "Show which page kind serves allocation requests",
		Long: `The classify command routes each request size (in bytes) the way the
heap does: small requests to a fixed-block bucket, medium requests to a
next-fit page, everything else to the large-object path.

Example:
  pagectl classify 24 1000 4096 1048576`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args)
		},
	}
	return cmd
}

type classifyRow struct {
	Bytes     uint64  `json:"bytes"`
	Kind      string  `json:"kind"`
	Cells     uint64  `json:"cells"`
	Bucket    *uint32 `json:"bucket,omitempty"`
	BlockSize uint32  `json:"block_cells,omitempty"`
}

func runClassify(args []string) error {
	g, err := resolveGeometry()
	if err != nil {
		return err
	}

	rows := make([]classifyRow, 0, len(args))
	for _, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", arg, err)
		}
		c, err := g.Classify(n)
		if err != nil {
			return err
		}
		row := classifyRow{Bytes: n, Kind: c.Kind.String(), Cells: c.Cells}
		if c.Kind == geometry.KindFixedBlock {
			bucket := c.Bucket
			row.Bucket = &bucket
			row.BlockSize = c.BlockSize
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	for _, r := range rows {
		if r.Bucket != nil {
			printInfo("%d bytes: %s, %d cells, bucket %d (%d-cell blocks)\n",
				r.Bytes, r.Kind, r.Cells, *r.Bucket, r.BlockSize)
			continue
		}
		printInfo("%d bytes: %s, %d cells\n", r.Bytes, r.Kind, r.Cells)
	}
	return nil
}

func newBucketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucket <cells>",
		Short: "Print the fixed-block bucket of a block size in cells",
		Long: `The bucket command maps a block size in cells (1-127) to its bucket.

Example:
  pagectl bucket 127`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucket(args)
		},
	}
	return cmd
}

func runBucket(args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid block size %q: %w", args[0], err)
	}
	b, err := geometry.BucketIndex(uint32(n))
	if err != nil {
		return err
	}
	size, err := geometry.BucketBlockSize(b)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]uint32{"cells": uint32(n), "bucket": b, "block_cells": size})
	}
	printInfo("%d cells -> bucket %d (%d-cell blocks)\n", n, b, size)
	return nil
}
