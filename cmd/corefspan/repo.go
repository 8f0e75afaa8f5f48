package main

import (
	"github.com/ostraka/corefspan/storage"
	"github.com/ostraka/corefspan/storage/filesystem"
	"github.com/ostraka/corefspan/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

// openRepo opens the document repository selected by the store flags and
// returns it together with its close function.
func openRepo(c *cli.Context) (storage.DocRepository, func() error, error) {
	if db := c.String("db"); db != "" {
		pool, err := zombiezen.NewPool(db)
		if err != nil {
			return nil, nil, err
		}
		if err := zombiezen.CreateDocTables(pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return zombiezen.NewDocStore(pool), pool.Close, nil
	}

	store, err := filesystem.NewDocStore(c.String("dir"))
	if err != nil {
		return nil, nil, err
	}
	return store, func() error { return nil }, nil
}
