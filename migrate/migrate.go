// Copyright © 2024 The vmshuttle authors

// Package migrate drives one VM at a time through the ordered migration
// steps: staging relocation on the source cluster, re-registration on
// the destination, network reconfiguration, power-on with connectivity
// verification, final storage placement and a guest tools check.
package migrate

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/types"
	"k8s.io/klog/v2"

	"github.com/vmshuttle/vmshuttle/batch"
	"github.com/vmshuttle/vmshuttle/monitor"
	"github.com/vmshuttle/vmshuttle/pkg/constants"
	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/platform"
	"github.com/vmshuttle/vmshuttle/preflight"
)

// Step is the position of a job in the migration pipeline. Steps only
// ever advance; a step that reported success is never repeated.
type Step int

const (
	StepValidated Step = iota
	StepRelocatingStaging
	StepRegistering
	StepReconfiguring
	StepPoweringOn
	StepVerifyingConnectivity
	StepRelocatingFinal
	StepUpgradingTools
	StepDone
	StepFailed
)

func (s Step) String() string {
	switch s {
	case StepValidated:
		return "validated"
	case StepRelocatingStaging:
		return "relocating to staging"
	case StepRegistering:
		return "registering"
	case StepReconfiguring:
		return "reconfiguring network"
	case StepPoweringOn:
		return "powering on"
	case StepVerifyingConnectivity:
		return "verifying connectivity"
	case StepRelocatingFinal:
		return "relocating to final storage"
	case StepUpgradingTools:
		return "upgrading tools"
	case StepDone:
		return "done"
	case StepFailed:
		return "failed"
	}
	return "unknown"
}

// Job is the runtime state of one migration request. It is mutated only
// by the state machine and kept for reporting after the batch completes.
type Job struct {
	Request  batch.MigrationRequest
	Step     Step
	FailedAt Step
	DestVM   *object.VirtualMachine
	Err      error
}

// Migration holds the two endpoint bindings and the tunables of the
// per-VM pipeline. The bindings are shared read-only across all jobs.
type Migration struct {
	Source      platform.Client
	Dest        platform.Client
	DestCluster string

	ShortPoll    monitor.PollSpec
	LongPoll     monitor.PollSpec
	GuestPoll    monitor.PollSpec
	ToolsGrace   time.Duration
	PingAttempts int
	PingInterval time.Duration
}

// NewMigration returns a Migration with the default cadences.
func NewMigration(src, dst platform.Client, destCluster string) *Migration {
	return &Migration{
		Source:       src,
		Dest:         dst,
		DestCluster:  destCluster,
		ShortPoll:    monitor.PollSpec{Interval: constants.ShortPollInterval, MaxPolls: constants.ShortPollMaxCount},
		LongPoll:     monitor.PollSpec{Interval: constants.LongPollInterval, MaxPolls: constants.LongPollMaxCount},
		GuestPoll:    monitor.PollSpec{Interval: constants.GuestStatePollInterval, MaxPolls: constants.GuestStatePollMaxCount},
		ToolsGrace:   constants.ToolsMissingGracePeriod,
		PingAttempts: constants.PingAttempts,
		PingInterval: constants.PingRetryInterval,
	}
}

// MigrateVM runs one job through every step in order. The first error
// moves the job to StepFailed carrying the step it failed at; there is
// no automatic retry and no rollback of completed steps.
func (m *Migration) MigrateVM(ctx context.Context, job *Job) error {
	steps := []struct {
		step Step
		run  func(context.Context, *Job) error
	}{
		{StepRelocatingStaging, m.relocateToStaging},
		{StepRegistering, m.register},
		{StepReconfiguring, m.reconfigureNetwork},
		{StepPoweringOn, m.powerOn},
		{StepVerifyingConnectivity, m.verifyConnectivity},
		{StepRelocatingFinal, m.relocateToFinal},
		{StepUpgradingTools, m.upgradeTools},
	}
	for _, s := range steps {
		job.Step = s.step
		klog.Infof("VM %s: %s", job.Request.VMName, s.step)
		if err := s.run(ctx, job); err != nil {
			job.FailedAt = s.step
			job.Step = StepFailed
			job.Err = errors.Wrapf(err, "VM %s failed while %s", job.Request.VMName, s.step)
			return job.Err
		}
	}
	job.Step = StepDone
	return nil
}

// relocateToStaging moves the VM's storage onto the shared staging
// datastore with thin-provisioned disks. Free space is re-checked right
// before submission since it may have drifted since preflight.
func (m *Migration) relocateToStaging(ctx context.Context, job *Job) error {
	vm, err := m.Source.GetVMByName(ctx, job.Request.VMName)
	if err != nil {
		return err
	}
	ds, err := m.Source.GetDatastoreByName(ctx, job.Request.SourceStagingStore)
	if err != nil {
		return err
	}
	if err := preflight.CheckCapacity(ctx, job.Request, m.Source, vm, ds); err != nil {
		return err
	}
	handle, err := m.Source.SubmitRelocate(ctx, vm, ds, true)
	if err != nil {
		return err
	}
	return monitor.AwaitTask(ctx, m.Source, handle, "relocate to staging", m.LongPoll,
		m.progressLogger(job.Request.VMName, "staging relocation"))
}

// register finds the VM's configuration file on the staging datastore as
// seen from the destination and adds the VM to the destination cluster's
// inventory. A missing vmx means the relocation did not complete as
// expected.
func (m *Migration) register(ctx context.Context, job *Job) error {
	stagingDS, err := m.Dest.GetDatastoreByName(ctx, job.Request.DestStagingStore)
	if err != nil {
		return err
	}
	vmxPath, err := m.Dest.LocateVmxFile(ctx, stagingDS, job.Request.VMName)
	if err != nil {
		return err
	}
	klog.Infof("VM %s: found configuration file %s", job.Request.VMName, vmxPath)
	handle, err := m.Dest.SubmitRegister(ctx, vmxPath, job.Request.VMName, m.DestCluster)
	if err != nil {
		return err
	}
	if err := monitor.AwaitTask(ctx, m.Dest, handle, "register", m.ShortPoll, nil); err != nil {
		return err
	}
	destVM, err := m.Dest.GetVMByName(ctx, job.Request.VMName)
	if err != nil {
		return errors.Wrap(err, "VM is not visible on the destination after registration")
	}
	job.DestVM = destVM
	return nil
}

// reconfigureNetwork moves the VM's first network adapter onto the
// destination port group. The platform does not hand back the resulting
// task, so it is awaited through the recent-task list by entity name.
func (m *Migration) reconfigureNetwork(ctx context.Context, job *Job) error {
	network, err := m.Dest.GetPortGroupByName(ctx, job.Request.DestNetwork)
	if err != nil {
		return err
	}
	if err := m.Dest.SubmitReconfigureNetwork(ctx, job.DestVM, network); err != nil {
		return err
	}
	return monitor.AwaitByEntity(ctx, m.Dest, constants.TaskKindReconfigureVM, job.Request.VMName, m.ShortPoll, nil)
}

func (m *Migration) powerOn(ctx context.Context, job *Job) error {
	if err := m.Dest.SubmitPowerOn(ctx, job.DestVM); err != nil {
		return err
	}
	return monitor.AwaitByEntity(ctx, m.Dest, constants.TaskKindPowerOnVM, job.Request.VMName, m.ShortPoll, nil)
}

// verifyConnectivity waits for the guest OS to come up and then probes
// the VM's target IP. Task status alone is not trusted here: the VM has
// to actually answer on the network it was moved to.
func (m *Migration) verifyConnectivity(ctx context.Context, job *Job) error {
	toolsStatus, err := m.Dest.ToolsStatus(ctx, job.DestVM)
	if err != nil {
		return err
	}
	if toolsStatus == types.VirtualMachineToolsVersionStatusGuestToolsNotInstalled {
		klog.Warningf("VM %s has no guest tools; waiting %s before probing", job.Request.VMName, m.ToolsGrace)
		if err := sleepCtx(ctx, m.ToolsGrace); err != nil {
			return err
		}
	} else if err := m.waitForGuestRunning(ctx, job); err != nil {
		return err
	}

	for attempt := 1; attempt <= m.PingAttempts; attempt++ {
		reachable, err := m.Dest.Pingable(ctx, job.Request.TargetIP)
		if err != nil {
			return errors.Wrapf(err, "failed to probe %s", job.Request.TargetIP)
		}
		if reachable {
			klog.Infof("VM %s is reachable at %s", job.Request.VMName, job.Request.TargetIP)
			return nil
		}
		klog.Warningf("VM %s: probe %d/%d of %s failed", job.Request.VMName, attempt, m.PingAttempts, job.Request.TargetIP)
		if attempt < m.PingAttempts {
			if err := sleepCtx(ctx, m.PingInterval); err != nil {
				return err
			}
		}
	}
	return &errs.ConnectivityCheckFailedError{IP: job.Request.TargetIP, Attempts: m.PingAttempts}
}

func (m *Migration) waitForGuestRunning(ctx context.Context, job *Job) error {
	for poll := 0; poll < m.GuestPoll.MaxPolls; poll++ {
		state, err := m.Dest.GuestState(ctx, job.DestVM)
		if err != nil {
			return errors.Wrap(err, "failed to get guest state")
		}
		if state == constants.GuestStateRunning {
			return nil
		}
		if poll < m.GuestPoll.MaxPolls-1 {
			if err := sleepCtx(ctx, m.GuestPoll.Interval); err != nil {
				return err
			}
		}
	}
	return &errs.GuestNotReadyError{VM: job.Request.VMName, Waited: m.GuestPoll.Budget()}
}

// relocateToFinal moves the running VM's storage from the staging
// datastore to its permanent home. No disk format override here; the
// disks keep whatever format the staging move produced.
func (m *Migration) relocateToFinal(ctx context.Context, job *Job) error {
	ds, err := m.Dest.GetDatastoreByName(ctx, job.Request.DestFinalStore)
	if err != nil {
		return err
	}
	handle, err := m.Dest.SubmitRelocate(ctx, job.DestVM, ds, false)
	if err != nil {
		return err
	}
	return monitor.AwaitTask(ctx, m.Dest, handle, "relocate to final storage", m.LongPoll,
		m.progressLogger(job.Request.VMName, "final relocation"))
}

// upgradeTools submits a guest tools upgrade when the guest reports an
// outdated version. The upgrade is fire-and-forget: it runs inside the
// guest after the migration is already complete.
func (m *Migration) upgradeTools(ctx context.Context, job *Job) error {
	toolsStatus, err := m.Dest.ToolsStatus(ctx, job.DestVM)
	if err != nil {
		return err
	}
	switch toolsStatus {
	case types.VirtualMachineToolsVersionStatusGuestToolsNeedUpgrade:
		klog.Infof("VM %s: guest tools are outdated, submitting upgrade", job.Request.VMName)
		return m.Dest.SubmitToolsUpgrade(ctx, job.DestVM)
	case types.VirtualMachineToolsVersionStatusGuestToolsNotInstalled:
		klog.Warningf("VM %s has no guest tools installed; skipping upgrade", job.Request.VMName)
	}
	return nil
}

func (m *Migration) progressLogger(vmName, what string) func(int32) {
	return func(percent int32) {
		klog.Infof("VM %s: %s %d%% complete", vmName, what, percent)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
