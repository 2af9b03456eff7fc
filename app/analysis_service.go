package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"sixsigma/adapters/stats/engine"
	"sixsigma/domain/core"
	"sixsigma/domain/dataset"
	"sixsigma/domain/quality"
	"sixsigma/internal"
	"sixsigma/ports"
)

// AnalysisService orchestrates full analysis runs over dataset columns
// and optionally persists the resulting snapshots. The engine stays
// pure; anything stateful lives here.
type AnalysisService struct {
	engine *engine.QualityEngine
	repo   ports.AnalysisRepository // nil disables persistence
	logger *internal.Logger

	// maxConcurrency bounds parallel column analyses in batch runs.
	maxConcurrency int64
}

// NewAnalysisService creates a new analysis service. A nil repository
// is valid and simply disables snapshot persistence.
func NewAnalysisService(eng *engine.QualityEngine, repo ports.AnalysisRepository, maxConcurrency int, logger *internal.Logger) *AnalysisService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		engine:         eng,
		repo:           repo,
		logger:         logger,
		maxConcurrency: int64(maxConcurrency),
	}
}

// Analyze runs one analysis and persists the snapshot when a
// repository is configured.
func (s *AnalysisService) Analyze(ctx context.Context, req engine.AnalyzeRequest) (*quality.AnalysisSnapshot, error) {
	snapshot, err := s.engine.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, snapshot); err != nil {
			// The analysis itself succeeded; persistence failure is
			// logged and surfaced, not swallowed.
			s.logger.Error("failed to persist snapshot %s: %v", snapshot.ID, err)
			return snapshot, err
		}
		s.logger.Debug("persisted snapshot %s (%s/%s)", snapshot.ID, snapshot.Dataset, snapshot.Column)
	}

	return snapshot, nil
}

// ColumnOutcome is one column's result in a batch run.
type ColumnOutcome struct {
	Column   string                    `json:"column"`
	Snapshot *quality.AnalysisSnapshot `json:"snapshot,omitempty"`
	Err      error                     `json:"-"`
	ErrText  string                    `json:"error,omitempty"`
}

// AnalyzeTable runs the engine over every numeric column of a table
// with bounded concurrency. Per-column failures (short columns, zero
// opportunities) do not abort the batch; they come back in the
// outcome list.
func (s *AnalysisService) AnalyzeTable(ctx context.Context, table *dataset.Table, spec quality.SpecLimits, targetSigma float64) ([]ColumnOutcome, error) {
	columns := table.NumericColumns()
	outcomes := make([]ColumnOutcome, len(columns))

	sem := semaphore.NewWeighted(s.maxConcurrency)
	var wg sync.WaitGroup

	for i, column := range columns {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Let in-flight analyses finish before abandoning the
			// outcome slice they write into.
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(idx int, col string) {
			defer wg.Done()
			defer sem.Release(1)

			outcome := ColumnOutcome{Column: col}
			sample, err := table.NumericColumn(col)
			if err == nil {
				outcome.Snapshot, err = s.Analyze(ctx, engine.AnalyzeRequest{
					Dataset:     table.Name,
					Column:      col,
					Sample:      sample,
					Spec:        spec,
					TargetSigma: targetSigma,
				})
			}
			if err != nil {
				outcome.Err = err
				outcome.ErrText = err.Error()
				s.logger.Warn("column %s skipped: %v", col, err)
			}
			outcomes[idx] = outcome
		}(i, column)
	}

	wg.Wait()
	return outcomes, nil
}

// GetSnapshot loads a stored snapshot by ID.
func (s *AnalysisService) GetSnapshot(ctx context.Context, id core.SnapshotID) (*quality.AnalysisSnapshot, error) {
	if s.repo == nil {
		return nil, core.ErrSnapshotNotFound
	}
	return s.repo.Get(ctx, id)
}

// ListSnapshots lists stored snapshots, newest first, optionally
// filtered by dataset name.
func (s *AnalysisService) ListSnapshots(ctx context.Context, datasetName string, limit int) ([]*quality.AnalysisSnapshot, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.List(ctx, datasetName, limit)
}

// DeleteSnapshot removes a stored snapshot.
func (s *AnalysisService) DeleteSnapshot(ctx context.Context, id core.SnapshotID) error {
	if s.repo == nil {
		return core.ErrSnapshotNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ClassifyColumns guesses the role of each column in a table, promoting
// numeric unknowns to measurement candidates.
func (s *AnalysisService) ClassifyColumns(table *dataset.Table) []dataset.ColumnRoleGuess {
	guesses := dataset.ClassifyColumns(table.Columns)
	numeric := make(map[string]bool, len(table.Numeric))
	for col := range table.Numeric {
		numeric[col] = true
	}
	return dataset.PromoteMeasurements(guesses, numeric)
}
