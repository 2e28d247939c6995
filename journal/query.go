package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetSignal returns a single signal by ID.
func (j *SQLiteJournal) GetSignal(signalID string) (Signal, error) {
	var s Signal

	row := j.db.QueryRow(`
		SELECT signal_id, time, pair, action, price, trend, reason
		FROM signals
		WHERE signal_id = ?`, signalID)

	err := row.Scan(&s.ID, &s.Time, &s.Pair, &s.Action, &s.Price, &s.Trend, &s.Reason)
	if err != nil {
		if err == sql.ErrNoRows {
			return Signal{}, fmt.Errorf("signal %q not found", signalID)
		}
		return Signal{}, err
	}
	return s, nil
}

// ListSignalsBetween returns signals whose time is within [start, end).
func (j *SQLiteJournal) ListSignalsBetween(start, end time.Time) ([]Signal, error) {
	rows, err := j.db.Query(`
		SELECT signal_id, time, pair, action, price, trend, reason
		FROM signals
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Signal
	for rows.Next() {
		var s Signal
		if err := rows.Scan(&s.ID, &s.Time, &s.Pair, &s.Action, &s.Price, &s.Trend, &s.Reason); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListObservations returns up to limit observations of pair, newest first.
func (j *SQLiteJournal) ListObservations(pair string, limit int) ([]Observation, error) {
	rows, err := j.db.Query(`
		SELECT observation_id, time, pair, price, trend, mode
		FROM observations
		WHERE pair = ?
		ORDER BY time DESC, observation_id DESC
		LIMIT ?`, pair, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.ID, &o.Time, &o.Pair, &o.Price, &o.Trend, &o.Mode); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
