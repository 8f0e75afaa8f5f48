package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ostraka/corefspan/coref"
	"github.com/ostraka/corefspan/doc"
	"github.com/ostraka/corefspan/file"
	"github.com/ostraka/corefspan/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (s *DocStore) List() ([]storage.Meta, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	metas := []storage.Meta{}
	err = sqlitex.Execute(conn, "SELECT name, bundles, entities FROM docs ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			metas = append(metas, storage.Meta{
				Name:     stmt.ColumnText(0),
				Bundles:  stmt.ColumnInt(1),
				Entities: stmt.ColumnInt(2),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return metas, nil
}

func (s *DocStore) Read(name string) (*doc.Document, *coref.Layer, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, nil, err
	}
	defer s.pool.Put(conn)

	var data string
	found := false
	err = sqlitex.Execute(conn, "SELECT data FROM docs WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			data = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, fmt.Errorf("doc not found: %s", name)
	}

	var dj file.DocJSON
	if err := json.Unmarshal([]byte(data), &dj); err != nil {
		return nil, nil, fmt.Errorf("doc %s: %w", name, err)
	}
	return file.Decode(dj)
}

func (s *DocStore) Write(name string, d *doc.Document, l *coref.Layer) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	entities := 0
	if l != nil {
		entities = len(l.Entities())
	}

	data, err := json.Marshal(file.Encode(d, l))
	if err != nil {
		return err
	}

	return sqlitex.Execute(conn,
		"INSERT INTO docs (name, bundles, entities, data) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT(name) DO UPDATE SET bundles = excluded.bundles, entities = excluded.entities, data = excluded.data",
		&sqlitex.ExecOptions{
			Args: []interface{}{name, len(d.Bundles()), entities, string(data)},
		})
}
