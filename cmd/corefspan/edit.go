package main

import (
	"errors"

	"github.com/ostraka/corefspan/edit"

	"github.com/urfave/cli/v2"
)

func editCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "interactively edit the coreference layer of a document",
		ArgsUsage: "<doc>",
		Flags:     storeFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: edit <doc>")
			}

			repo, closeRepo, err := openRepo(c)
			if err != nil {
				return err
			}
			defer closeRepo()

			name := c.Args().First()
			d, l, err := repo.Read(name)
			if err != nil {
				return err
			}

			return edit.NewHandler(name, d, l, repo).Run()
		},
	}
}
