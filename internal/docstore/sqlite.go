package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLite keeps every document as a JSON blob in a single table and fans
// mutations out to in-process subscribers.
type SQLite struct {
	db *sqlx.DB

	mu     sync.Mutex
	subs   map[int64]*subscription
	nextID int64
}

type subscription struct {
	collection string
	where      Where
	onChange   func([]Doc)
	onError    func(error)

	mu       sync.Mutex // serializes deliveries
	canceled bool
}

func Open(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite has a single writer anyway, and a pool would
	// give every connection its own database under ":memory:" DSNs.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	schema := `
	CREATE TABLE IF NOT EXISTS documents(
	  collection TEXT NOT NULL,
	  id         TEXT NOT NULL,
	  data       TEXT NOT NULL,
	  created_at TEXT NOT NULL,
	  PRIMARY KEY(collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &SQLite{db: db, subs: map[int64]*subscription{}}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Create inserts v as a new document. The store assigns the id and, unless v
// already carries one, the created_at timestamp; both are written into the
// document body so Decode sees them.
func (s *SQLite) Create(ctx context.Context, collection string, v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("docstore: marshal: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", fmt.Errorf("docstore: document must be a JSON object: %w", err)
	}

	id := uuid.NewString()
	m["id"] = id
	created, _ := m["created_at"].(string)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339Nano)
		m["created_at"] = created
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents(collection,id,data,created_at) VALUES(?,?,?,?)`,
		collection, id, string(data), created)
	if err != nil {
		return "", err
	}
	s.notify(collection)
	return id, nil
}

// Set upserts a document under a caller-chosen id. Used for documents whose
// identity is external: carts keyed by user id, sessions keyed by cookie.
func (s *SQLite) Set(ctx context.Context, collection, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("docstore: marshal: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("docstore: document must be a JSON object: %w", err)
	}
	m["id"] = id
	created, _ := m["created_at"].(string)
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339Nano)
		m["created_at"] = created
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
	  INSERT INTO documents(collection,id,data,created_at) VALUES(?,?,?,?)
	  ON CONFLICT(collection,id) DO UPDATE SET data=excluded.data`,
		collection, id, string(data), created)
	if err != nil {
		return err
	}
	s.notify(collection)
	return nil
}

func (s *SQLite) Get(ctx context.Context, collection, id string) (Doc, error) {
	var data string
	err := s.db.GetContext(ctx, &data,
		`SELECT data FROM documents WHERE collection=? AND id=?`, collection, id)
	if err == sql.ErrNoRows {
		return Doc{}, ErrNotFound
	}
	if err != nil {
		return Doc{}, err
	}
	return Doc{ID: id, Data: json.RawMessage(data)}, nil
}

// Update merges fields into the document's top-level keys.
func (s *SQLite) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var data string
	err = tx.GetContext(ctx, &data,
		`SELECT data FROM documents WHERE collection=? AND id=?`, collection, id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return err
	}
	for k, v := range fields {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET data=? WHERE collection=? AND id=?`,
		string(merged), collection, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.notify(collection)
	return nil
}

func (s *SQLite) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection=? AND id=?`, collection, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.notify(collection)
	return nil
}

func (s *SQLite) Query(ctx context.Context, collection string, where Where) ([]Doc, error) {
	q := `SELECT id, data FROM documents WHERE collection=?`
	args := []any{collection}
	if where.Field != "" {
		q += ` AND json_extract(data, ?) = ?`
		args = append(args, "$."+where.Field, where.Value)
	}
	q += ` ORDER BY id`

	rows := []struct {
		ID   string `db:"id"`
		Data string `db:"data"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	out := make([]Doc, 0, len(rows))
	for _, r := range rows {
		out = append(out, Doc{ID: r.ID, Data: json.RawMessage(r.Data)})
	}
	return out, nil
}

func (s *SQLite) Subscribe(collection string, where Where, onChange func([]Doc), onError func(error)) func() {
	sub := &subscription{collection: collection, where: where, onChange: onChange, onError: onError}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = sub
	s.mu.Unlock()

	// Initial snapshot before the cancel handle is handed back.
	s.deliver(sub)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		sub.mu.Lock()
		sub.canceled = true
		sub.mu.Unlock()
	}
}

func (s *SQLite) notify(collection string) {
	s.mu.Lock()
	matched := make([]*subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.collection == collection {
			matched = append(matched, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range matched {
		s.deliver(sub)
	}
}

// deliver captures a snapshot and hands it to the subscriber. The snapshot
// query runs under the subscription lock so concurrent mutators cannot
// reorder deliveries: every subscriber sees snapshots in commit order.
func (s *SQLite) deliver(sub *subscription) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.canceled {
		return
	}
	docs, err := s.Query(context.Background(), sub.collection, sub.where)
	if err != nil {
		if sub.onError != nil {
			sub.onError(err)
		}
		return
	}
	sub.onChange(docs)
}
