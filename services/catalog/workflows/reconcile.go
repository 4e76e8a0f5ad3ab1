// Package workflows holds the Temporal workflow that reconciles the search
// read model against the write model. Two-step projection writes can leave the
// document store behind (a game row without a document, or a document with
// stale details); this workflow walks the write model and repairs the drift.
package workflows

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// TaskQueue is the Temporal task queue for catalog maintenance workflows.
const TaskQueue = "catalog-maintenance"

// ReconcileWorkflowID pins the cron workflow to a single running instance.
const ReconcileWorkflowID = "catalog-reconcile-search-index"

const reconcilePageSize = 100

// ReconcileResult summarizes one reconciliation run.
type ReconcileResult struct {
	Scanned  int `json:"scanned"`
	Repaired int `json:"repaired"`
}

// ReconcileSearchIndex walks the write model page by page and repairs the
// search document store. Sales counters are never touched; only missing
// documents and drifted denormalized fields are repaired.
func ReconcileSearchIndex(ctx workflow.Context) (ReconcileResult, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	log := workflow.GetLogger(ctx)

	var result ReconcileResult
	var acts *Activities
	for page := 0; ; page++ {
		var ids []uuid.UUID
		if err := workflow.ExecuteActivity(ctx, acts.ListGameIDs, page).Get(ctx, &ids); err != nil {
			return result, err
		}
		if len(ids) == 0 {
			break
		}

		var repaired int
		if err := workflow.ExecuteActivity(ctx, acts.RepairDocuments, ids).Get(ctx, &repaired); err != nil {
			return result, err
		}
		result.Scanned += len(ids)
		result.Repaired += repaired
	}

	log.Info("search index reconciled", "scanned", result.Scanned, "repaired", result.Repaired)
	return result, nil
}
