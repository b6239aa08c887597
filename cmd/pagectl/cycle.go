package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/joshuapare/pagekit/heap/geometry"
	"github.com/joshuapare/pagekit/heap/page"
	"github.com/joshuapare/pagekit/internal/logger"
)

var (
	cycleBucket     uint32
	cycleBlockCells uint32
	cycleKeepEvery  uint32
)

func init() {
	rootCmd.AddCommand(newCycleCmd())
}

func newCycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Run an allocate and sweep cycle on one page of each kind",
		Long: `The cycle command maps one page of each kind, fills it, then sweeps it
keeping every Nth allocation alive, and reports what was allocated, what
survived and what is free afterwards.

Example:
  pagectl cycle
  pagectl cycle --bucket 9 --block-cells 64 --keep-every 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycle()
		},
	}
	cmd.Flags().Uint32Var(&cycleBucket, "bucket", 0, "Fixed-block bucket to fill")
	cmd.Flags().Uint32Var(&cycleBlockCells, "block-cells", 64, "Next-fit block payload in cells")
	cmd.Flags().Uint32Var(&cycleKeepEvery, "keep-every", 2, "Keep every Nth allocation alive across the sweep")
	return cmd
}

type cycleRow struct {
	Kind      string `json:"kind"`
	Allocated int    `json:"allocated"`
	Alive     int    `json:"alive"`
	Free      int    `json:"free"`
	FreeUnit  string `json:"free_unit"`
}

func runCycle() error {
	if cycleKeepEvery == 0 {
		return errors.New("--keep-every must be at least 1")
	}
	g, err := resolveGeometry()
	if err != nil {
		return err
	}

	rows := make([]cycleRow, 0, 3)
	for _, run := range []func(*geometry.Geometry) (cycleRow, error){cycleFixedBlock, cycleNextFit, cycleExtraObject} {
		row, err := run(g)
		if err != nil {
			return err
		}
		logger.Info("page cycle", "kind", row.Kind, "allocated", row.Allocated, "alive", row.Alive, "free", row.Free)
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("\n%-14s %10s %10s %10s\n", "KIND", "ALLOCATED", "ALIVE", "FREE")
	for _, r := range rows {
		printInfo("%-14s %10d %10d %10d %s\n", r.Kind, r.Allocated, r.Alive, r.Free, r.FreeUnit)
	}
	return nil
}

// keep reports whether the nth allocation survives the sweep.
func keep(n int) bool { return n%int(cycleKeepEvery) == 0 }

func cycleFixedBlock(g *geometry.Geometry) (cycleRow, error) {
	p, unmap, err := page.MapFixedBlockPage(g, cycleBucket)
	if err != nil {
		return cycleRow{}, err
	}
	defer release("fixed-block", unmap)

	allocated := 0
	for {
		if _, ok := p.TryAllocate(); !ok {
			break
		}
		allocated++
	}
	bs := p.BlockSize()
	alive := p.Sweep(func(ref uint32) bool { return keep(int(ref / bs)) })
	return cycleRow{
		Kind:      geometry.KindFixedBlock.String(),
		Allocated: allocated,
		Alive:     alive,
		Free:      p.FreeBlocks(),
		FreeUnit:  "blocks",
	}, nil
}

func cycleNextFit(g *geometry.Geometry) (cycleRow, error) {
	p, unmap, err := page.MapNextFitPage(g)
	if err != nil {
		return cycleRow{}, err
	}
	defer release("next-fit", unmap)

	order := make(map[uint32]int)
	for {
		ref, err := p.TryAllocate(cycleBlockCells)
		if errors.Is(err, page.ErrPageFull) {
			break
		}
		if err != nil {
			return cycleRow{}, err
		}
		order[ref] = len(order)
	}
	alive := p.Sweep(func(ref uint32) bool { return keep(order[ref]) })
	total, _ := p.FreeCells()
	return cycleRow{
		Kind:      geometry.KindNextFit.String(),
		Allocated: len(order),
		Alive:     alive,
		Free:      int(total),
		FreeUnit:  "cells",
	}, nil
}

func cycleExtraObject(g *geometry.Geometry) (cycleRow, error) {
	p, unmap, err := page.MapExtraObjectPage(g)
	if err != nil {
		return cycleRow{}, err
	}
	defer release("extra-object", unmap)

	allocated := 0
	for {
		if _, ok := p.TryAllocate(); !ok {
			break
		}
		allocated++
	}
	alive := p.Sweep(func(ref uint32) bool { return keep(int(ref)) })
	return cycleRow{
		Kind:      "extra-object",
		Allocated: allocated,
		Alive:     alive,
		Free:      g.ExtraObjectCount - p.Allocated(),
		FreeUnit:  "slots",
	}, nil
}

func release(kind string, unmap func() error) {
	if err := unmap(); err != nil {
		logger.Warn("unmap page", "kind", kind, "error", err)
	}
}
