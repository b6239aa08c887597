package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/internal/format"
)

func init() {
	rootCmd.AddCommand(newBucketsCmd())
}

func newBucketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "Print the fixed-block size-class table",
		Long: `The buckets command prints every fixed-block bucket with its block size,
how many blocks one page holds and how many cells are left over.

Example:
  pagectl buckets
  pagectl buckets --fixed-block-page-size 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuckets()
		},
	}
	return cmd
}

type bucketRow struct {
	Bucket     uint32 `json:"bucket"`
	BlockCells uint32 `json:"block_cells"`
	BlockBytes int    `json:"block_bytes"`
	Blocks     int    `json:"blocks_per_page"`
	WasteCells int    `json:"waste_cells"`
}

func bucketTable(g *geometry.Geometry) ([]bucketRow, error) {
	rows := make([]bucketRow, 0, geometry.BucketCount)
	for b := uint32(0); b <= g.FixedBlockPageMaxBucket; b++ {
		size, err := geometry.BucketBlockSize(b)
		if err != nil {
			return nil, err
		}
		blocks, err := g.BlocksPerPage(b)
		if err != nil {
			return nil, err
		}
		rows = append(rows, bucketRow{
			Bucket:     b,
			BlockCells: size,
			BlockBytes: int(size) * format.FixedBlockCellSize,
			Blocks:     blocks,
			WasteCells: g.FixedBlockPageCellCount - blocks*int(size),
		})
	}
	return rows, nil
}

func runBuckets() error {
	g, err := resolveGeometry()
	if err != nil {
		return err
	}
	rows, err := bucketTable(g)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(rows)
	}

	printInfo("%-8s %8s %8s %8s %8s\n", "BUCKET", "CELLS", "BYTES", "BLOCKS", "WASTE")
	for _, r := range rows {
		printInfo("%-8d %8d %8d %8d %8d\n", r.Bucket, r.BlockCells, r.BlockBytes, r.Blocks, r.WasteCells)
	}
	return nil
}
