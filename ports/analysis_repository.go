package ports

import (
	"context"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// AnalysisRepository persists analysis snapshots. The engine itself is
// stateless; saving results for later comparison is an explicit caller
// decision.
type AnalysisRepository interface {
	Save(ctx context.Context, snapshot *quality.AnalysisSnapshot) error
	Get(ctx context.Context, id core.SnapshotID) (*quality.AnalysisSnapshot, error)
	List(ctx context.Context, dataset string, limit int) ([]*quality.AnalysisSnapshot, error)
	Delete(ctx context.Context, id core.SnapshotID) error
}
