package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func lsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list stored documents",
		Flags: storeFlags(),
		Action: func(c *cli.Context) error {
			repo, closeRepo, err := openRepo(c)
			if err != nil {
				return err
			}
			defer closeRepo()

			metas, err := repo.List()
			if err != nil {
				return err
			}

			for _, meta := range metas {
				fmt.Fprintf(ui.Out, "%-40s %4d bundles %4d entities\n",
					meta.Name, meta.Bundles, meta.Entities)
			}
			return nil
		},
	}
}
