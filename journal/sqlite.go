package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordObservation(o Observation) error {
	_, err := j.db.Exec(`
		INSERT INTO observations
		(observation_id, time, pair, price, trend, mode)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Time.UTC(), o.Pair, o.Price, o.Trend, o.Mode,
	)
	return err
}

func (j *SQLiteJournal) RecordSignal(s Signal) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(signal_id, time, pair, action, price, trend, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Time.UTC(), s.Pair, s.Action, s.Price, s.Trend, s.Reason,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
