package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"healthmart/internal/models"
)

var (
	// ErrConnectionFailed marks a run that never started because the
	// warehouse was unreachable.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrSchemaCreationFailed marks a run aborted because the destination
	// schema could not be created.
	ErrSchemaCreationFailed = errors.New("schema creation failed")

	ErrInvalidRequest = errors.New("invalid migration request")
)

// SchemaStore is the catalog surface the migrator needs.
type SchemaStore interface {
	EnsureSchema(ctx context.Context, schema string) error
	TransferTable(ctx context.Context, source, destination, table string) error
	TableExists(ctx context.Context, schema, table string) (bool, error)
	ListTables(ctx context.Context, schema string) ([]string, error)
}

// RunStore persists finished runs.
type RunStore interface {
	Insert(ctx context.Context, run *models.MigrationRun) error
	List(ctx context.Context, limit int) ([]models.MigrationRun, error)
}

type MigrationService struct {
	schemas SchemaStore
	runs    RunStore
}

func NewMigrationService(schemas SchemaStore, runs RunStore) *MigrationService {
	return &MigrationService{
		schemas: schemas,
		runs:    runs,
	}
}

// Migrate moves the requested tables into the destination schema, one
// statement per table. A failing table is recorded and the run continues;
// earlier transfers are never rolled back. The returned report carries the
// destination schema's observed membership after all transfers attempted.
func (s *MigrationService) Migrate(ctx context.Context, req *models.MigrationRequest) (*models.MigrationReport, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = "public"
	}

	report := &models.MigrationReport{
		RunID:       uuid.New(),
		Destination: req.Destination,
		Source:      source,
		StartedAt:   time.Now().UTC(),
	}

	if err := s.schemas.EnsureSchema(ctx, req.Destination); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaCreationFailed, err)
	}

	for _, table := range req.Tables {
		s.moveTable(ctx, report, source, req.Destination, table)
	}

	membership, err := s.schemas.ListTables(ctx, req.Destination)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("failed to verify destination schema %s: %w", req.Destination, err)
	}
	report.Membership = membership
	report.FinishedAt = time.Now().UTC()

	s.record(ctx, report)
	return report, nil
}

func (s *MigrationService) moveTable(ctx context.Context, report *models.MigrationReport, source, destination, table string) {
	inSource, err := s.schemas.TableExists(ctx, source, table)
	if err != nil {
		report.Failed = append(report.Failed, models.TableFailure{
			Table:  table,
			Kind:   models.FailureReassignmentFailed,
			Reason: fmt.Sprintf("catalog lookup failed: %v", err),
		})
		return
	}

	if !inSource {
		// A table already under the destination means a previous run
		// moved it; that is a skip, not data loss.
		inDest, err := s.schemas.TableExists(ctx, destination, table)
		if err == nil && inDest {
			log.Printf("Table %s already in schema %s, skipping", table, destination)
			report.Skipped = append(report.Skipped, table)
			return
		}
		report.Failed = append(report.Failed, models.TableFailure{
			Table:  table,
			Kind:   models.FailureTableNotFound,
			Reason: fmt.Sprintf("table %s not found under schema %s", table, source),
		})
		return
	}

	if err := s.schemas.TransferTable(ctx, source, destination, table); err != nil {
		report.Failed = append(report.Failed, models.TableFailure{
			Table:  table,
			Kind:   models.FailureReassignmentFailed,
			Reason: err.Error(),
		})
		return
	}

	report.Moved = append(report.Moved, table)
}

// record persists the run for later inspection. Bookkeeping failure does not
// invalidate an otherwise finished migration.
func (s *MigrationService) record(ctx context.Context, report *models.MigrationReport) {
	run := &models.MigrationRun{
		ID:          report.RunID,
		Destination: report.Destination,
		Source:      report.Source,
		Report:      *report,
		Success:     report.Success(),
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
	}
	if err := s.runs.Insert(ctx, run); err != nil {
		log.Printf("Failed to record migration run %s: %v", run.ID, err)
	}
}

// History returns the most recent persisted runs.
func (s *MigrationService) History(ctx context.Context, limit int) ([]models.MigrationRun, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.runs.List(ctx, limit)
}

func validateRequest(req *models.MigrationRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.Destination == "" {
		return fmt.Errorf("%w: destination schema is required", ErrInvalidRequest)
	}
	if len(req.Tables) == 0 {
		return fmt.Errorf("%w: at least one table is required", ErrInvalidRequest)
	}
	source := req.Source
	if source == "" {
		source = "public"
	}
	if source == req.Destination {
		return fmt.Errorf("%w: source and destination schemas are the same", ErrInvalidRequest)
	}
	return nil
}
