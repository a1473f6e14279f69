package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoad_CSVAndTSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,score\nA,1\nB,NA\n"), 0o644))
	tsvPath := filepath.Join(dir, "scores.tsv")
	require.NoError(t, os.WriteFile(tsvPath, []byte("name\tscore\nA\t1\nB\t2\n"), 0o644))

	ds, err := Load(csvPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 2, Columns: 2}, ds.Shape())
	assert.True(t, ds.Rows[1].Value("score").IsNull())

	ds, err = Load(tsvPath, Options{})
	require.NoError(t, err)
	assert.Equal(t, Number(2), ds.Rows[1].Value("score"))
}

func TestLoad_StrictErrorIsWrapped(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(p, []byte("a,b\n1\n"), 0o644))

	_, err := Load(p, Options{Strict: true})
	var fce *FieldCountError
	require.True(t, errors.As(err, &fce))
	assert.Contains(t, err.Error(), "bad.csv")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "data.parquet"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_XLSXSheetSelection(t *testing.T) {
	path := writeWorkbook(t)

	ds, err := Load(path, Options{SheetName: "data"})
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 3, Columns: 3}, ds.Shape())
	assert.Equal(t, Text("yes"), ds.Rows[0].Value("Survived"))
	assert.Equal(t, Number(22), ds.Rows[0].Value("Age"))
	assert.True(t, ds.Rows[1].Value("Age").IsNull(), "NA cell becomes null")

	ds, err = Load(path, Options{SheetIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, ds.Columns())

	_, err = Load(path, Options{SheetName: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Data")

	_, err = Load(path, Options{SheetIndex: 5})
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "titanic train", DisplayName("/tmp/titanic_train.csv"))
	assert.Equal(t, "students performance", DisplayName("students-performance.xlsx"))
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"note"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"first sheet"}))

	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	rows := [][]any{
		{"Name", "Age", "Survived"},
		{"Ann", 22, "yes"},
		{"Ben", "NA", "no"},
		{"Cal", 31, "yes"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "passengers.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
