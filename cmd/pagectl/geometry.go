package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/pagekit/internal/format"
)

func init() {
	rootCmd.AddCommand(newGeometryCmd())
}

func newGeometryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the resolved page geometry",
		Long: `The geometry command resolves the page geometry and prints the cell
count of every page kind, the largest fixed-block bucket and the largest
next-fit block.

Example:
  pagectl geometry
  pagectl geometry --fixed-block-page-size 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeometry()
		},
	}
	return cmd
}

type geometryReport struct {
	FixedBlockPageSize      int    `json:"fixed_block_page_size"`
	FixedBlockPageCellCount int    `json:"fixed_block_page_cell_count"`
	FixedBlockPageMaxBucket uint32 `json:"fixed_block_page_max_bucket"`
	NextFitPageSize         int    `json:"next_fit_page_size"`
	NextFitPageCellCount    int    `json:"next_fit_page_cell_count"`
	NextFitPageMaxBlockSize int    `json:"next_fit_page_max_block_size"`
	ExtraObjectPageSize     int    `json:"extra_object_page_size"`
	ExtraObjectCount        int    `json:"extra_object_count"`
}

func runGeometry() error {
	g, err := resolveGeometry()
	if err != nil {
		return err
	}

	report := geometryReport{
		FixedBlockPageSize:      g.FixedBlockPageSize,
		FixedBlockPageCellCount: g.FixedBlockPageCellCount,
		FixedBlockPageMaxBucket: g.FixedBlockPageMaxBucket,
		NextFitPageSize:         format.NextFitPageSize,
		NextFitPageCellCount:    g.NextFitPageCellCount,
		NextFitPageMaxBlockSize: g.NextFitPageMaxBlockSize,
		ExtraObjectPageSize:     format.ExtraObjectPageSize,
		ExtraObjectCount:        g.ExtraObjectCount,
	}
	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nFixed-block page:\n")
	printInfo("  Page size:   %d bytes\n", report.FixedBlockPageSize)
	printInfo("  Cells:       %d x %d bytes\n", report.FixedBlockPageCellCount, format.FixedBlockCellSize)
	printInfo("  Max bucket:  %d\n", report.FixedBlockPageMaxBucket)
	printInfo("\nNext-fit page:\n")
	printInfo("  Page size:   %d bytes\n", report.NextFitPageSize)
	printInfo("  Cells:       %d x %d bytes\n", report.NextFitPageCellCount, format.CellSize)
	printInfo("  Max block:   %d cells\n", report.NextFitPageMaxBlockSize)
	printInfo("\nExtra-object page:\n")
	printInfo("  Page size:   %d bytes\n", report.ExtraObjectPageSize)
	printInfo("  Slots:       %d x %d bytes\n", report.ExtraObjectCount, format.ExtraObjectCellSize)
	return nil
}
