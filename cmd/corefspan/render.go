package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ostraka/corefspan/render"

	"github.com/urfave/cli/v2"
)

func renderCommand(ui UI) *cli.Command {
	flags := append(storeFlags(),
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: fmt.Sprintf("output format: %s", strings.Join(render.SupportedFormats(), "|")),
		},
		&cli.BoolFlag{Name: "color", Usage: "colorize text output"},
		&cli.BoolFlag{Name: "prefix", Usage: "prepend tree addresses to text output"},
	)

	return &cli.Command{
		Name:      "render",
		Usage:     "render the coreference spans of a document",
		ArgsUsage: "<doc>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("usage: render <doc>")
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

			r, err := render.New(c.String("format"), ui.Out)
			if err != nil {
				return err
			}
			if text, ok := r.(*render.Text); ok {
				text.HasColor = c.Bool("color")
				text.HasPrefix = c.Bool("prefix")
			}

			return r.Render(d, l)
		},
	}
}
