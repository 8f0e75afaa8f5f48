package main

import (
	"fmt"
	"sort"

	"github.com/ostraka/corefspan/stat"

	"github.com/urfave/cli/v2"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics for one document or the whole store",
		ArgsUsage: "[doc]",
		Flags:     storeFlags(),
		Action: func(c *cli.Context) error {
			repo, closeRepo, err := openRepo(c)
			if err != nil {
				return err
			}
			defer closeRepo()

			handler := stat.NewHandler()

			if c.NArg() > 0 {
				d, l, err := repo.Read(c.Args().First())
				if err != nil {
					return err
				}
				handler.Aggregate(d, l)
			} else {
				metas, err := repo.List()
				if err != nil {
					return err
				}
				for _, meta := range metas {
					d, l, err := repo.Read(meta.Name)
					if err != nil {
						return err
					}
					handler.Aggregate(d, l)
				}
			}

			printStats(ui, handler.Get())
			return nil
		},
	}
}

func printStats(ui UI, s stat.Stats) {
	fmt.Fprintf(ui.Out, "bundles:              %d\n", s.NumBundles)
	fmt.Fprintf(ui.Out, "trees:                %d\n", s.NumTrees)
	fmt.Fprintf(ui.Out, "nodes:                %d (%d empty)\n", s.NumNodes, s.NumEmptyNodes)
	fmt.Fprintf(ui.Out, "nodes per tree mean:  %d\n", s.NodesPerTreeMean)
	fmt.Fprintf(ui.Out, "entities:             %d (%d singletons)\n", s.NumEntities, s.NumSingletons)
	fmt.Fprintf(ui.Out, "mentions:             %d (%d discontinuous)\n", s.NumMentions, s.NumDiscontinuous)
	fmt.Fprintf(ui.Out, "crossing pairs:       %d\n", s.NumCrossings)

	sizes := make([]int, 0, len(s.NodesPerTreeDis))
	for size := range s.NodesPerTreeDis {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	for _, size := range sizes {
		fmt.Fprintf(ui.Out, "  %3d nodes: %d trees\n", size, s.NodesPerTreeDis[size])
	}
}
