package services

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"healthmart/internal/models"
)

// TableReplacer loads one dataset into the warehouse with replace semantics.
type TableReplacer interface {
	ReplaceTable(ctx context.Context, schema, table string, columns []string, rows [][]string) error
}

type DatasetService struct {
	store  TableReplacer
	schema string
}

// NewDatasetService builds a loader that writes raw datasets into the given
// schema. An empty schema defaults to public, the warehouse's landing area.
func NewDatasetService(store TableReplacer, schema string) *DatasetService {
	if schema == "" {
		schema = "public"
	}
	return &DatasetService{
		store:  store,
		schema: schema,
	}
}

// Load reads one CSV file and replaces its warehouse table. All columns land
// as TEXT; typing is left to downstream marts.
func (s *DatasetService) Load(ctx context.Context, spec models.DatasetSpec) error {
	if spec.Table == "" {
		return fmt.Errorf("dataset %s has no table name", spec.Path)
	}

	file, err := os.Open(spec.Path)
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(skipBOM(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", spec.Path, err)
	}
	columns := normalizeColumns(header)

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read rows of %s: %w", spec.Path, err)
	}

	if err := s.store.ReplaceTable(ctx, s.schema, spec.Table, columns, rows); err != nil {
		return err
	}

	log.Printf("Loaded %d rows from %s into table %s.%s", len(rows), filepath.Base(spec.Path), s.schema, spec.Table)
	return nil
}

// Refresh loads every dataset in the manifest, collecting per-dataset
// failures instead of stopping at the first one.
func (s *DatasetService) Refresh(ctx context.Context, specs []models.DatasetSpec) *models.RefreshReport {
	report := &models.RefreshReport{StartedAt: time.Now().UTC()}

	for _, spec := range specs {
		log.Printf("Loading data from %s into table %s", spec.Path, spec.Table)
		if err := s.Load(ctx, spec); err != nil {
			log.Printf("Failed to load dataset %s: %v", spec.Table, err)
			report.Failed = append(report.Failed, models.DatasetFailure{
				Table:  spec.Table,
				Reason: err.Error(),
			})
			continue
		}
		report.Loaded = append(report.Loaded, spec.Table)
	}

	report.FinishedAt = time.Now().UTC()
	return report
}

// DefaultManifest lists the stock datasets of the private-health pipeline.
func DefaultManifest(dataDir string) []models.DatasetSpec {
	files := []struct {
		name  string
		table string
	}{
		{"Suicide deaths.csv", "Suicide_deaths"},
		{"calcule.csv", "calcule"},
		{"Effectif des assurés actifs par Tranche d'âge.csv", "Effectif_des_assures_actifs"},
		{"Health in Morocco_wikipedia.csv", "Health_in_Morocco_wikipedia"},
		{"Indicateurs sur les déclarations de salaires CNSS effectuées au titre de l'année 2020 ( cnss).csv", "Indicateurs_sur_les_declarations"},
		{"indicateur-sur-la-repartition-des-affilies-par-region.csv", "indicateur_sur_la_repartition_des_affilies"},
		{"indicateur-sur-la-repartition-des-affilies-par-secteur-dactivite cnss.csv", "indicateur_sur_la_repartition_des_secteur"},
		{"indic-soc-sante-mef-2014-3 MEF.csv", "indic_soc_sante_mef_2014_3_MEF"},
		{"infrastructures-privees-2022.csv", "infrastructures_privees"},
		{"offre-de-soins-privees-ms-2013.csv", "offre_de_soins_privees_ms_2013"},
		{"stastique.csv", "stastique"},
	}

	specs := make([]models.DatasetSpec, 0, len(files))
	for _, f := range files {
		specs = append(specs, models.DatasetSpec{
			Path:  filepath.Join(dataDir, f.name),
			Table: f.table,
		})
	}
	return specs
}

// skipBOM drops a UTF-8 byte order mark if present. The stock CSV exports
// carry one.
func skipBOM(file *os.File) *bufio.Reader {
	reader := bufio.NewReader(file)
	if b, err := reader.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		reader.Discard(3)
	}
	return reader
}

// normalizeColumns turns raw CSV headers into stable column names: lowercase,
// runs of non-alphanumerics collapsed to a single underscore, duplicates and
// blanks given positional fallbacks.
func normalizeColumns(header []string) []string {
	columns := make([]string, 0, len(header))
	seen := make(map[string]int)

	for i, raw := range header {
		name := normalizeIdentifier(raw)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name] = 1
		columns = append(columns, name)
	}

	return columns
}

func normalizeIdentifier(raw string) string {
	var sb strings.Builder
	lastUnderscore := true

	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(sb.String(), "_")
}
