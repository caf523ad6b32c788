// Copyright © 2024 The vmshuttle authors

// Package monitor polls asynchronous platform tasks to completion,
// success or timeout. Two strategies are provided: awaiting a task whose
// handle the platform returned directly, and awaiting a task that first
// has to be located in the endpoint's recent-task list by operation kind
// and entity name.
package monitor

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vmware/govmomi/vim25/types"
	"k8s.io/klog/v2"

	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/platform"
)

// PollSpec is one polling cadence: how often to look and how many looks
// are allowed before the task is declared timed out.
type PollSpec struct {
	Interval time.Duration
	MaxPolls int
}

func (s PollSpec) Budget() time.Duration {
	return time.Duration(s.MaxPolls) * s.Interval
}

// AwaitTask polls the task behind h until it reaches a terminal state.
// Progress of a running task is reported through onProgress. When the
// poll budget runs out, one cancellation is attempted; a cancel failure
// is logged but never masks the timeout error.
func AwaitTask(ctx context.Context, c platform.Client, h platform.TaskHandle, op string, spec PollSpec, onProgress func(int32)) error {
	for poll := 0; poll < spec.MaxPolls; poll++ {
		status, err := c.TaskStatus(ctx, h)
		if err != nil {
			return errors.Wrapf(err, "failed to poll status of %s task", op)
		}
		switch status.State {
		case types.TaskInfoStateSuccess:
			return nil
		case types.TaskInfoStateError:
			return &errs.TaskFailedError{Op: op, Message: status.Message}
		case types.TaskInfoStateRunning:
			if onProgress != nil {
				onProgress(status.Progress)
			}
		}
		if poll < spec.MaxPolls-1 {
			if err := sleep(ctx, spec.Interval); err != nil {
				return err
			}
		}
	}
	if err := c.CancelTask(ctx, h); err != nil {
		klog.Warningf("Failed to cancel %s task after timeout: %v", op, err)
	}
	return &errs.TaskTimeoutError{Op: op, Polls: spec.MaxPolls, Interval: spec.Interval}
}

// AwaitByEntity awaits a task the platform did not hand back a handle
// for. The recent-task list is polled for an entry matching the
// operation's description ID and the target entity name; once found, the
// task is awaited by its handle.
func AwaitByEntity(ctx context.Context, c platform.Client, descriptionID, entityName string, spec PollSpec, onProgress func(int32)) error {
	h, err := LocateByEntity(ctx, c, descriptionID, entityName, spec)
	if err != nil {
		return err
	}
	return AwaitTask(ctx, c, h, descriptionID, spec, onProgress)
}

// LocateByEntity finds the handle of an in-flight task by operation kind
// and entity name.
func LocateByEntity(ctx context.Context, c platform.Client, descriptionID, entityName string, spec PollSpec) (platform.TaskHandle, error) {
	for poll := 0; poll < spec.MaxPolls; poll++ {
		snapshots, err := c.RecentTasks(ctx)
		if err != nil {
			return platform.TaskHandle{}, errors.Wrap(err, "failed to query recent task list")
		}
		for _, snapshot := range snapshots {
			if snapshot.DescriptionID == descriptionID && snapshot.EntityName == entityName {
				return snapshot.Handle, nil
			}
		}
		if poll < spec.MaxPolls-1 {
			if err := sleep(ctx, spec.Interval); err != nil {
				return platform.TaskHandle{}, err
			}
		}
	}
	return platform.TaskHandle{}, &errs.TaskTimeoutError{
		Op:       descriptionID + " lookup for " + entityName,
		Polls:    spec.MaxPolls,
		Interval: spec.Interval,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
