// Copyright © 2024 The vmshuttle authors

package migrate

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/vmshuttle/vmshuttle/batch"
	"github.com/vmshuttle/vmshuttle/preflight"
)

// Result is the recorded outcome of one job.
type Result struct {
	Request  batch.MigrationRequest
	Step     Step // StepDone or StepFailed
	FailedAt Step
	Err      error
}

// BatchOptions controls how the orchestrator reacts to a failing job.
type BatchOptions struct {
	// ContinueOnError isolates failures per job instead of halting the
	// whole batch on the first one.
	ContinueOnError bool
}

// RunBatch processes the requests strictly in order, one VM at a time.
// Job N+1 does not begin until job N is done or failed. Each job runs
// preflight validation first and only then the mutating pipeline.
func RunBatch(ctx context.Context, requests []batch.MigrationRequest, m *Migration, opts BatchOptions) ([]Result, error) {
	results := make([]Result, 0, len(requests))
	for i, req := range requests {
		klog.Infof("Migrating VM %d/%d: %s", i+1, len(requests), req.VMName)

		job := &Job{Request: req, Step: StepValidated}
		err := preflight.Validate(ctx, req, m.Source, m.Dest, m.DestCluster)
		if err != nil {
			job.Step = StepFailed
			job.FailedAt = StepValidated
			job.Err = errors.Wrapf(err, "preflight validation failed for VM %s", req.VMName)
		} else {
			err = m.MigrateVM(ctx, job)
		}

		results = append(results, Result{Request: req, Step: job.Step, FailedAt: job.FailedAt, Err: job.Err})
		if job.Err != nil {
			klog.Errorf("Migration of VM %s failed while %s: %v", req.VMName, job.FailedAt, job.Err)
			if !opts.ContinueOnError {
				return results, job.Err
			}
			continue
		}
		klog.Infof("VM %s migrated successfully", req.VMName)
	}

	failed := 0
	for _, r := range results {
		if r.Step == StepFailed {
			failed++
		}
	}
	if failed > 0 {
		return results, errors.Errorf("%d of %d migrations failed", failed, len(requests))
	}
	return results, nil
}

// LogSummary prints the per-job outcome table at batch completion.
func LogSummary(results []Result) {
	klog.Infof("Batch summary (%d jobs):", len(results))
	for _, r := range results {
		if r.Step == StepDone {
			klog.Infof("  %s: succeeded", r.Request.VMName)
			continue
		}
		klog.Infof("  %s: failed while %s: %v", r.Request.VMName, r.FailedAt, r.Err)
	}
}
