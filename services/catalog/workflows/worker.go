package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	pkgworkflows "github.com/ghuser/gamecatalog/pkg/workflows"
)

// NewWorker builds a Temporal worker on the catalog maintenance task queue
// with the reconciliation workflow and activities registered. The caller owns
// the worker's lifecycle (Start/Stop).
func NewWorker(tc *pkgworkflows.TemporalClient, acts *Activities) worker.Worker {
	w := worker.New(tc.Client, TaskQueue, worker.Options{})
	w.RegisterWorkflow(ReconcileSearchIndex)
	w.RegisterActivity(acts.ListGameIDs)
	w.RegisterActivity(acts.RepairDocuments)
	return w
}

// ScheduleReconcile starts the reconciliation workflow on a cron schedule
// running every interval. The fixed workflow id keeps at most one schedule
// alive across worker restarts.
func ScheduleReconcile(ctx context.Context, tc *pkgworkflows.TemporalClient, interval time.Duration) error {
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           ReconcileWorkflowID,
		TaskQueue:    TaskQueue,
		CronSchedule: fmt.Sprintf("@every %s", interval),
	}, ReconcileSearchIndex)
	var already *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &already) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("schedule reconcile workflow: %w", err)
	}
	return nil
}
