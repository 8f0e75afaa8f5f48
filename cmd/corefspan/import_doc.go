package main

import (
	"fmt"

	"github.com/ostraka/corefspan/storage/filesystem"
	"github.com/ostraka/corefspan/storage/sqlite/zombiezen"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy JSON documents from a directory into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Value: "./corpus/doc", Usage: "source directory"},
			&cli.StringFlag{Name: "to", Value: "./corpus/corefspan.db", Usage: "target sqlite database"},
		},
		Action: func(c *cli.Context) error {
			return importDoc(c.String("from"), c.String("to"), ui)
		},
	}
}

func importDoc(from, to string, ui UI) error {
	src, err := filesystem.NewDocStore(from)
	if err != nil {
		return err
	}

	pool, err := zombiezen.NewPool(to)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreateDocTables(pool); err != nil {
		return fmt.Errorf("failed to create docs table: %w", err)
	}

	dst := zombiezen.NewDocStore(pool)

	fmt.Fprintf(ui.Out, "Reading docs from %s...\n", from)
	metas, err := src.List()
	if err != nil {
		return err
	}

	uiprogress.Start()
	bar := uiprogress.AddBar(len(metas))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, meta := range metas {
		d, l, err := src.Read(meta.Name)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to read doc %s: %w", meta.Name, err)
		}

		if err := dst.Write(meta.Name, d, l); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", meta.Name, err)
		}
		count++
		bar.Incr()
	}
	uiprogress.Stop()

	fmt.Fprintf(ui.Out, "Imported %d docs into %s\n", count, to)
	return nil
}
