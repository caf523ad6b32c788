// Copyright © 2024 The vmshuttle authors

// Package preflight confirms, before any mutation begins, that every
// resource a migration request references exists and is eligible. All
// checks are read-only and short-circuit on the first failure.
package preflight

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/vmshuttle/vmshuttle/batch"
	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/pkg/utils"
	"github.com/vmshuttle/vmshuttle/platform"
)

// Validate checks one migration request against both endpoints.
// Insufficient staging space is a validation failure here, not a runtime
// retry condition. Capacity is compared at two-decimal precision on both
// sides.
func Validate(ctx context.Context, req batch.MigrationRequest, src, dst platform.Client, destCluster string) error {
	vm, err := src.GetVMByName(ctx, req.VMName)
	if err != nil {
		return err
	}
	state, err := src.PowerState(ctx, vm)
	if err != nil {
		return errors.Wrapf(err, "failed to get power state of VM %s", req.VMName)
	}
	if state != types.VirtualMachinePowerStatePoweredOff {
		return errors.Errorf("VM %s is %s; only powered-off VMs can be migrated", req.VMName, state)
	}

	stagingDS, err := src.GetDatastoreByName(ctx, req.SourceStagingStore)
	if err != nil {
		return err
	}
	mounted, err := src.DatastoreMountedOnHost(ctx, stagingDS, vm)
	if err != nil {
		return errors.Wrapf(err, "failed to check visibility of datastore %s", req.SourceStagingStore)
	}
	if !mounted {
		return &errs.ResourceNotFoundError{Kind: "host-visible datastore", Name: req.SourceStagingStore}
	}
	if err := CheckCapacity(ctx, req, src, vm, stagingDS); err != nil {
		return err
	}

	if _, err := dst.GetDatastoreByName(ctx, req.DestStagingStore); err != nil {
		return err
	}
	if _, err := dst.GetDatastoreByName(ctx, req.DestFinalStore); err != nil {
		return err
	}
	if _, err := dst.GetPortGroupByName(ctx, req.DestNetwork); err != nil {
		return err
	}
	if _, err := dst.GetClusterByName(ctx, destCluster); err != nil {
		return err
	}
	return nil
}

// CheckCapacity verifies the staging datastore can hold the VM's used
// storage. It is also re-run by the migration pipeline immediately
// before the relocate is submitted, since free space may have changed
// since preflight.
func CheckCapacity(ctx context.Context, req batch.MigrationRequest, src platform.Client, vm *object.VirtualMachine, ds *object.Datastore) error {
	used, err := src.UsedSpaceGB(ctx, vm)
	if err != nil {
		return errors.Wrapf(err, "failed to get used space of VM %s", req.VMName)
	}
	free, err := src.FreeSpaceGB(ctx, ds)
	if err != nil {
		return errors.Wrapf(err, "failed to get free space of datastore %s", req.SourceStagingStore)
	}
	usedGB := utils.Round2(used)
	freeGB := utils.Round2(free)
	if freeGB < usedGB {
		return &errs.InsufficientCapacityError{
			Datastore:  req.SourceStagingStore,
			FreeGB:     freeGB,
			RequiredGB: usedGB,
		}
	}
	return nil
}
