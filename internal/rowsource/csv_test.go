package rowsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVBasic(t *testing.T) {
	input := "PUID,Draw Time,Last Name,First Name\n" +
		"123456789,04/15/25 09:30 AM,Smith,Alice\n" +
		"987654321,04/15/25 09:35 AM,Jones,Bob\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"PUID", "Draw Time", "Last Name", "First Name"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "123456789", table.Rows[0].Get("PUID"))
	assert.Equal(t, "Jones", table.Rows[1].Get("Last Name"))
}

func TestParseCSVStripsBOM(t *testing.T) {
	input := "﻿PUID,Draw Time\n123,04/15/25 09:30 AM\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, table.HasColumn("PUID"), "BOM should be stripped from the first header cell")
	assert.Equal(t, "123", table.Rows[0].Get("PUID"))
}

func TestParseCSVShortRow(t *testing.T) {
	input := "PUID,Draw Time,Last Name\n" +
		"123,04/15/25 09:30 AM\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	row := table.Rows[0]
	assert.True(t, row.Has("PUID"))
	assert.True(t, row.Has("Draw Time"))
	assert.False(t, row.Has("Last Name"), "missing trailing cell should be absent, not empty")
}

func TestParseCSVEmptyInput(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Columns)
}

func TestRequireColumns(t *testing.T) {
	table := &Table{Columns: []string{"PUID", "Draw Time"}}

	err := table.RequireColumns("draw.csv", "PUID", "Draw Time")
	assert.NoError(t, err)

	err = table.RequireColumns("draw.csv", "PUID", "Last Name", "First Name")
	require.Error(t, err)

	var srcErr SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrCodeMissingColumns, srcErr.Code)
	assert.Contains(t, srcErr.Message, "Last Name")
	assert.Contains(t, srcErr.Message, "First Name")
	assert.NotContains(t, srcErr.Message, "PUID")
}

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draw.csv")
	content := "PUID,Draw Time,Last Name,First Name\n123,04/15/25 09:30 AM,Smith,Alice\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source := NewFileSource(path)
	assert.Equal(t, "draw.csv", source.Name())

	table, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "Alice", table.Rows[0].Get("First Name"))
}

func TestFileSourceNotFound(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := source.Load(context.Background())
	require.Error(t, err)

	var srcErr SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrCodeNotFound, srcErr.Code)
	assert.Equal(t, "absent.csv", srcErr.Source)
}
