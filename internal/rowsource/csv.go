package rowsource

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSource loads a CSV file from disk.
type FileSource struct {
	name string
	path string
}

// NewFileSource creates a source for the given CSV path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		name: filepath.Base(path),
		path: path,
	}
}

// Name returns the file's base name.
func (s *FileSource) Name() string {
	return s.name
}

// Load reads and parses the CSV file.
func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewSourceError(s.name, ErrCodeNotFound, "file not found at "+s.path, err)
		}
		return nil, NewSourceError(s.name, ErrCodeUnknown, "failed to open file", err)
	}
	defer f.Close()

	table, err := ParseCSV(f)
	if err != nil {
		return nil, NewSourceError(s.name, ErrCodeParse, "failed to parse CSV", err)
	}
	return table, nil
}

// ParseCSV reads CSV data into a Table. The export tool emits UTF-8 with a
// BOM, so the first header cell is de-BOMed. Rows shorter than the header
// simply lack those cells; the normalizer treats absent cells as anomalies.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "﻿")
	}

	table := &Table{Columns: header}
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
