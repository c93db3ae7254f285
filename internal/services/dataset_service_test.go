package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmart/internal/models"
)

type fakeReplacer struct {
	schema  string
	table   string
	columns []string
	rows    [][]string
	err     error
}

func (f *fakeReplacer) ReplaceTable(_ context.Context, schema, table string, columns []string, rows [][]string) error {
	if f.err != nil {
		return f.err
	}
	f.schema = schema
	f.table = table
	f.columns = columns
	f.rows = rows
	return nil
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ReadsCSVIntoTable(t *testing.T) {
	path := writeCSV(t, "calcule.csv", "Region,Taux de couverture\nOriental,62\nSouss-Massa,54\n")
	replacer := &fakeReplacer{}
	svc := NewDatasetService(replacer, "")

	err := svc.Load(context.Background(), models.DatasetSpec{Path: path, Table: "calcule"})
	require.NoError(t, err)

	assert.Equal(t, "public", replacer.schema)
	assert.Equal(t, "calcule", replacer.table)
	assert.Equal(t, []string{"region", "taux_de_couverture"}, replacer.columns)
	assert.Equal(t, [][]string{{"Oriental", "62"}, {"Souss-Massa", "54"}}, replacer.rows)
}

func TestLoad_StripsByteOrderMark(t *testing.T) {
	path := writeCSV(t, "stastique.csv", "\xEF\xBB\xBFAnnée,Valeur\n2020,13\n")
	replacer := &fakeReplacer{}
	svc := NewDatasetService(replacer, "public")

	err := svc.Load(context.Background(), models.DatasetSpec{Path: path, Table: "stastique"})
	require.NoError(t, err)

	assert.Equal(t, []string{"année", "valeur"}, replacer.columns)
	assert.Equal(t, [][]string{{"2020", "13"}}, replacer.rows)
}

func TestLoad_MissingFile(t *testing.T) {
	svc := NewDatasetService(&fakeReplacer{}, "public")

	err := svc.Load(context.Background(), models.DatasetSpec{
		Path:  filepath.Join(t.TempDir(), "absent.csv"),
		Table: "absent",
	})
	assert.Error(t, err)
}

func TestRefresh_CollectsPerDatasetFailures(t *testing.T) {
	good := writeCSV(t, "good.csv", "a,b\n1,2\n")
	replacer := &fakeReplacer{}
	svc := NewDatasetService(replacer, "public")

	report := svc.Refresh(context.Background(), []models.DatasetSpec{
		{Path: good, Table: "good"},
		{Path: filepath.Join(t.TempDir(), "missing.csv"), Table: "missing"},
	})

	assert.False(t, report.Success())
	assert.Equal(t, []string{"good"}, report.Loaded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "missing", report.Failed[0].Table)
}

func TestNormalizeColumns(t *testing.T) {
	cases := []struct {
		name   string
		header []string
		want   []string
	}{
		{
			"spaces and punctuation",
			[]string{"Nombre d'assurés", "Tranche d'âge (ans)"},
			[]string{"nombre_d_assurés", "tranche_d_âge_ans"},
		},
		{
			"blank and duplicate headers",
			[]string{"a", "", "a"},
			[]string{"a", "column_2", "a_2"},
		},
		{
			"surrounding noise",
			[]string{"  Valeur  ", "--taux--"},
			[]string{"valeur", "taux"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeColumns(tc.header))
		})
	}
}

func TestDefaultManifest(t *testing.T) {
	specs := DefaultManifest("/srv/health/data")

	require.Len(t, specs, 11)

	tables := make([]string, 0, len(specs))
	for _, spec := range specs {
		tables = append(tables, spec.Table)
		assert.Equal(t, "/srv/health/data", filepath.Dir(spec.Path))
	}
	assert.Contains(t, tables, "calcule")
	assert.Contains(t, tables, "stastique")
	assert.Contains(t, tables, "infrastructures_privees")
}
