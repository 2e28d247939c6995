package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	observations *csv.Writer
	signals      *csv.Writer
	of, sf       *os.File
}

var (
	observationHeader = []string{"observation_id", "time", "pair", "price", "trend", "mode"}
	signalHeader      = []string{"signal_id", "time", "pair", "action", "price", "trend", "reason"}
)

func NewCSV(observationsPath, signalsPath string) (*CSVJournal, error) {
	of, err := os.Create(observationsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(signalsPath)
	if err != nil {
		of.Close()
		return nil, err
	}

	ow := csv.NewWriter(of)
	sw := csv.NewWriter(sf)

	if err := writeHeaders(ow, sw); err != nil {
		of.Close()
		sf.Close()
		return nil, err
	}

	return &CSVJournal{ow, sw, of, sf}, nil
}

func writeHeaders(ow, sw *csv.Writer) error {
	if err := ow.Write(observationHeader); err != nil {
		return err
	}
	if err := sw.Write(signalHeader); err != nil {
		return err
	}
	ow.Flush()
	if err := ow.Error(); err != nil {
		return err
	}
	sw.Flush()
	return sw.Error()
}

func (j *CSVJournal) RecordObservation(o Observation) error {
	err := j.observations.Write([]string{
		o.ID,
		o.Time.UTC().Format(time.RFC3339),
		o.Pair,
		f(o.Price),
		f(o.Trend),
		o.Mode,
	})
	if err != nil {
		return err
	}
	j.observations.Flush()
	return j.observations.Error()
}

func (j *CSVJournal) RecordSignal(s Signal) error {
	err := j.signals.Write([]string{
		s.ID,
		s.Time.UTC().Format(time.RFC3339),
		s.Pair,
		s.Action,
		f(s.Price),
		f(s.Trend),
		s.Reason,
	})
	if err != nil {
		return err
	}
	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSVJournal) Close() error {
	j.observations.Flush()
	if err := j.observations.Error(); err != nil {
		return err
	}
	j.signals.Flush()
	if err := j.signals.Error(); err != nil {
		return err
	}

	if err := j.of.Close(); err != nil {
		return err
	}
	if err := j.sf.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
