package main

import (
	"errors"

	"github.com/ostraka/corefspan/query"
	"github.com/ostraka/corefspan/render"

	"github.com/urfave/cli/v2"
)

func browseCommand(ui UI) *cli.Command {
	flags := append(storeFlags(),
		&cli.BoolFlag{Name: "color", Value: true, Usage: "colorize output"},
	)

	return &cli.Command{
		Name:      "browse",
		Usage:     "interactively browse the entities of a document",
		ArgsUsage: "<doc>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: browse <doc>")
			}

			repo, closeRepo, err := openRepo(c)
			if err != nil {
				return err
			}
			defer closeRepo()

			d, l, err := repo.Read(c.Args().First())
			if err != nil {
				return err
			}

			r := render.NewText(ui.Out)
			r.HasColor = c.Bool("color")
			r.HasPrefix = true

			return query.NewHandler(d, l, r).Run()
		},
	}
}
