package store

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSV header written by ExportCSV and expected by ImportCSV
var csvHeader = []string{"Title", "Video URL", "Thumbnail URL"}

// ExportCSV writes the current collection as a flat record list in
// discovery order: one row per item with title, video URL and thumbnail
// URL.
func (s *Store) ExportCSV(w io.Writer) error {
	items := s.Snapshot()

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, item := range items {
		if err := cw.Write([]string{item.Title, item.URL, item.ThumbnailURL}); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", item.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV appends records read from a previous export. Rows keep their
// file order, so a fresh store round-trips to identical
// (title, URL, thumbnail URL) tuples.
func (s *Store) ImportCSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("empty CSV: missing header")
	}
	for _, row := range rows[1:] {
		s.Append(row[0], row[1], row[2])
	}
	return nil
}
