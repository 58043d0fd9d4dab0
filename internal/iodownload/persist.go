package iodownload

import (
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/evsiren/evset/internal/iotable"
	"github.com/evsiren/evset/pkg/table"
	"github.com/gnames/gnuuid"
	_ "modernc.org/sqlite"
)

// JournalFile is the name of the SQLite journal in a download folder.
const JournalFile = "download_journal.sqlite"

// TablePersister rewrites the whole table after every row.
type TablePersister struct {
	Path string
}

// Restore does nothing: the table itself holds the state.
func (p *TablePersister) Restore(*table.Table) (int, error) {
	return 0, nil
}

// Save rewrites the table.
func (p *TablePersister) Save(t *table.Table, _ int) error {
	return iotable.Save(p.Path, t)
}

// Close rewrites the table.
func (p *TablePersister) Close(t *table.Table) error {
	return iotable.Save(p.Path, t)
}

// JournalPersister appends completed rows to a SQLite journal and rewrites
// the table only on Close. An interrupted run leaves the table stale, the
// next run replays the journal.
type JournalPersister struct {
	path      string
	tablePath string
	runID     string
	db        *sql.DB
}

const journalSchema = `
CREATE TABLE IF NOT EXISTS completed (
  row_key TEXT PRIMARY KEY,
  yt_id TEXT NOT NULL,
  run_id TEXT NOT NULL,
  done_at TEXT NOT NULL
)`

// NewJournalPersister opens or creates the journal in dir.
func NewJournalPersister(dir, tablePath, runID string) (*JournalPersister, error) {
	path := filepath.Join(dir, JournalFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, JournalError(path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, JournalError(path, err)
	}
	res := &JournalPersister{
		path:      path,
		tablePath: tablePath,
		runID:     runID,
		db:        db,
	}
	return res, nil
}

// RowKey identifies a row independently of its downloaded flag.
func RowKey(t *table.Table, row table.Row) string {
	flag := t.Col(table.ColDownloaded)
	fields := make([]string, 0, len(row))
	for i, f := range row {
		if i != flag {
			fields = append(fields, f)
		}
	}
	return gnuuid.New(strings.Join(fields, "\x1f")).String()
}

// Restore flags rows found in the journal.
func (p *JournalPersister) Restore(t *table.Table) (int, error) {
	rows, err := p.db.Query("SELECT row_key FROM completed")
	if err != nil {
		return 0, JournalError(p.path, err)
	}
	defer rows.Close()

	done := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return 0, JournalError(p.path, err)
		}
		done[key] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return 0, JournalError(p.path, err)
	}

	var res int
	for i, row := range t.Rows {
		if t.Downloaded(i) {
			continue
		}
		if _, ok := done[RowKey(t, row)]; ok {
			t.SetDownloaded(i, true)
			res++
		}
	}
	return res, nil
}

// Save adds a downloaded row to the journal or removes a row that is no
// longer flagged.
func (p *JournalPersister) Save(t *table.Table, i int) error {
	row := t.Rows[i]
	key := RowKey(t, row)
	var err error
	if t.Downloaded(i) {
		_, err = p.db.Exec(
			`INSERT OR REPLACE INTO completed (row_key, yt_id, run_id, done_at)
       VALUES (?, ?, ?, ?)`,
			key, t.Field(row, table.ColID), p.runID,
			time.Now().UTC().Format(time.RFC3339),
		)
	} else {
		_, err = p.db.Exec("DELETE FROM completed WHERE row_key = ?", key)
	}
	if err != nil {
		return JournalError(p.path, err)
	}
	return nil
}

// Close rewrites the table and closes the journal.
func (p *JournalPersister) Close(t *table.Table) error {
	err := iotable.Save(p.tablePath, t)
	if cerr := p.db.Close(); cerr != nil && err == nil {
		err = JournalError(p.path, cerr)
	}
	return err
}
