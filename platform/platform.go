// Copyright © 2024 The vmshuttle authors

// Package platform abstracts one connected virtualization endpoint:
// object lookup, capacity queries, async task submission, task status
// polling and cancellation. The migration pipeline only ever talks to an
// endpoint through this interface.
package platform

import (
	"context"

	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/types"
)

//go:generate mockgen -source=../platform/platform.go -destination=../platform/platform_mock.go -package=platform

// TaskHandle identifies one asynchronous platform task. A handle is
// owned by the monitor invocation that awaits it and is never shared
// across jobs.
type TaskHandle struct {
	Ref types.ManagedObjectReference
}

func (h TaskHandle) IsZero() bool {
	return h.Ref.Value == ""
}

// TaskStatus is one observation of a task's state.
type TaskStatus struct {
	State    types.TaskInfoState
	Progress int32
	Message  string // platform error text when State is error
}

// TaskSnapshot is one entry of the endpoint's recent-task list, used to
// locate tasks by operation kind and target entity name when the
// platform does not return a handle from the submitting call.
type TaskSnapshot struct {
	Handle        TaskHandle
	DescriptionID string
	EntityName    string
}

type Client interface {
	GetVMByName(ctx context.Context, name string) (*object.VirtualMachine, error)
	GetDatastoreByName(ctx context.Context, name string) (*object.Datastore, error)
	GetPortGroupByName(ctx context.Context, name string) (object.NetworkReference, error)
	GetClusterByName(ctx context.Context, name string) (*object.ClusterComputeResource, error)
	DatastoreMountedOnHost(ctx context.Context, ds *object.Datastore, vm *object.VirtualMachine) (bool, error)
	UsedSpaceGB(ctx context.Context, vm *object.VirtualMachine) (float64, error)
	FreeSpaceGB(ctx context.Context, ds *object.Datastore) (float64, error)
	PowerState(ctx context.Context, vm *object.VirtualMachine) (types.VirtualMachinePowerState, error)
	SubmitRelocate(ctx context.Context, vm *object.VirtualMachine, ds *object.Datastore, thin bool) (TaskHandle, error)
	LocateVmxFile(ctx context.Context, ds *object.Datastore, vmName string) (string, error)
	SubmitRegister(ctx context.Context, vmxPath, vmName, clusterName string) (TaskHandle, error)
	SubmitReconfigureNetwork(ctx context.Context, vm *object.VirtualMachine, network object.NetworkReference) error
	SubmitPowerOn(ctx context.Context, vm *object.VirtualMachine) error
	GuestState(ctx context.Context, vm *object.VirtualMachine) (string, error)
	ToolsStatus(ctx context.Context, vm *object.VirtualMachine) (types.VirtualMachineToolsVersionStatus, error)
	SubmitToolsUpgrade(ctx context.Context, vm *object.VirtualMachine) error
	Pingable(ctx context.Context, ip string) (bool, error)
	TaskStatus(ctx context.Context, h TaskHandle) (TaskStatus, error)
	CancelTask(ctx context.Context, h TaskHandle) error
	RecentTasks(ctx context.Context) ([]TaskSnapshot, error)
}
