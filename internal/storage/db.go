package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"judgments/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'running',
  records INTEGER NOT NULL DEFAULT 0,
  failed INTEGER NOT NULL DEFAULT 0,
  outputPath TEXT,
  startedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  finishedAt TEXT
);

CREATE TABLE IF NOT EXISTS cases (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  seq INTEGER NOT NULL,
  groupString TEXT NOT NULL,
  caseNumber TEXT NOT NULL,
  title TEXT NOT NULL,
  courtTitle TEXT NOT NULL,
  attachment TEXT NOT NULL,
  recordJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(runId, seq),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_cases_caseNumber ON cases(caseNumber);
CREATE INDEX IF NOT EXISTS idx_cases_attachment ON cases(attachment);

CREATE TABLE IF NOT EXISTS documents (
  attachment TEXT PRIMARY KEY,
  caseNumber TEXT NOT NULL,
  text TEXT NOT NULL,
  bytes INTEGER NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) CreateRun(traceID string) (int, error) {
	result, err := d.conn.Exec(`INSERT INTO runs (traceId) VALUES (?)`, traceID)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

func (d *DB) FinishRun(runID int, status string, records, failed int, outputPath *string) error {
	_, err := d.conn.Exec(`
UPDATE runs SET status = ?, records = ?, failed = ?, outputPath = ?, finishedAt = CURRENT_TIMESTAMP
WHERE id = ?
`, status, records, failed, outputPath, runID)
	return err
}

func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, startedAt, finishedAt, status, records, failed, outputPath
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.TraceID, &r.StartedAt, &r.FinishedAt, &r.Status, &r.Records, &r.Failed, &r.OutputPath); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// recordPair keeps column order through the JSON round trip.
type recordPair struct {
	K string `json:"k"`
	V string `json:"v"`
}

// InsertCases stores records of one page. seq continues from the run's
// current maximum so pages keep their arrival order.
func (d *DB) InsertCases(runID int, group string, records []internal.Record) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM cases WHERE runId = ?`, runID).Scan(&seq); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO cases (runId, seq, groupString, caseNumber, title, courtTitle, attachment, recordJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		seq++
		pairs := make([]recordPair, 0, rec.Len())
		for _, k := range rec.Keys() {
			pairs = append(pairs, recordPair{K: k, V: rec.Get(k)})
		}
		blob, err := json.Marshal(pairs)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(
			runID, seq, group,
			rec.Get(internal.ColCaseNumber), rec.Get(internal.ColTitle), rec.Get(internal.ColCourtTitle), rec.Get(internal.ColAttachment),
			string(blob),
		); err != nil {
			return fmt.Errorf("insert case seq=%d: %w", seq, err)
		}
	}

	return tx.Commit()
}

// GetRunCollection rebuilds the collection of a run in its original order.
func (d *DB) GetRunCollection(runID int) (*internal.Collection, error) {
	rows, err := d.conn.Query(`SELECT recordJson FROM cases WHERE runId = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coll := &internal.Collection{}
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var pairs []recordPair
		if err := json.Unmarshal([]byte(blob), &pairs); err != nil {
			return nil, err
		}
		rec := internal.NewRecord()
		for _, p := range pairs {
			rec.Set(p.K, p.V)
		}
		coll.Append(rec)
	}
	return coll, rows.Err()
}

// ListAttachmentURLs returns distinct attachment URLs of a run that point at
// an actual file and have no stored document yet.
func (d *DB) ListAttachmentURLs(runID int, origin string, limit int) ([]internal.AttachmentRef, error) {
	rows, err := d.conn.Query(`
SELECT MIN(c.id), MIN(c.caseNumber), c.attachment
FROM cases c
LEFT JOIN documents doc ON doc.attachment = c.attachment
WHERE c.runId = ? AND c.attachment NOT IN (?, ?) AND doc.attachment IS NULL
GROUP BY c.attachment
ORDER BY MIN(c.seq) ASC
LIMIT ?
`, runID, internal.NA, origin, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.AttachmentRef
	for rows.Next() {
		var ref internal.AttachmentRef
		if err := rows.Scan(&ref.CaseID, &ref.CaseNumber, &ref.URL); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (d *DB) UpsertDocument(attachment, caseNumber, text string, size int) error {
	_, err := d.conn.Exec(`
INSERT INTO documents (attachment, caseNumber, text, bytes) VALUES (?, ?, ?, ?)
ON CONFLICT(attachment) DO UPDATE SET
  caseNumber = excluded.caseNumber,
  text = excluded.text,
  bytes = excluded.bytes,
  updatedAt = CURRENT_TIMESTAMP
`, attachment, caseNumber, text, size)
	return err
}

func (d *DB) GetDocumentText(attachment string) (*string, error) {
	var text string
	err := d.conn.QueryRow(`SELECT text FROM documents WHERE attachment = ?`, attachment).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &text, nil
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
