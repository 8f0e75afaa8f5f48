package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// BuildTag and BuildCommit are set at build time via -ldflags.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fmt.Fprintf(ui.Err, "corefspan: %v\n", err)
		os.Exit(1)
	}
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "corefspan",
		Usage:     "render and browse coreference spans over treebank documents",
		Version:   fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit),
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Commands: []*cli.Command{
			importCommand(ui),
			lsCommand(ui),
			renderCommand(ui),
			statCommand(ui),
			browseCommand(ui),
			editCommand(ui),
		},
	}
}

// storeFlags are shared by every command that opens a document repository.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Value: "./corpus/doc",
			Usage: "directory of JSON documents",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "sqlite database path (overrides --dir)",
		},
	}
}
