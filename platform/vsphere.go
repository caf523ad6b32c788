// Copyright © 2024 The vmshuttle authors

package platform

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	probing "github.com/prometheus-community/pro-bing"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/vmshuttle/vmshuttle/pkg/constants"
	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/pkg/utils"
	"github.com/vmshuttle/vmshuttle/vcenter"
)

// VSphereClient implements Client on top of one vCenter endpoint binding.
type VSphereClient struct {
	VC *vcenter.VCenterClient

	// Recent-task queries are serialized so that two lookups matching by
	// entity name never interleave against the same endpoint.
	taskListMu sync.Mutex
}

func NewVSphereClient(vc *vcenter.VCenterClient) *VSphereClient {
	return &VSphereClient{VC: vc}
}

// GetVMByName searches every datacenter on the endpoint for the VM.
func (c *VSphereClient) GetVMByName(ctx context.Context, name string) (*object.VirtualMachine, error) {
	datacenters, err := c.VC.GetDatacenters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datacenters")
	}
	for _, datacenter := range datacenters {
		c.VC.VCFinder.SetDatacenter(datacenter)
		vm, err := c.VC.VCFinder.VirtualMachine(ctx, name)
		if err == nil {
			return vm, nil
		}
	}
	return nil, &errs.ResourceNotFoundError{Kind: "virtual machine", Name: name}
}

func (c *VSphereClient) GetDatastoreByName(ctx context.Context, name string) (*object.Datastore, error) {
	datacenters, err := c.VC.GetDatacenters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datacenters")
	}
	for _, datacenter := range datacenters {
		c.VC.VCFinder.SetDatacenter(datacenter)
		ds, err := c.VC.VCFinder.Datastore(ctx, name)
		if err == nil {
			return ds, nil
		}
	}
	return nil, &errs.ResourceNotFoundError{Kind: "datastore", Name: name}
}

func (c *VSphereClient) GetPortGroupByName(ctx context.Context, name string) (object.NetworkReference, error) {
	datacenters, err := c.VC.GetDatacenters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datacenters")
	}
	for _, datacenter := range datacenters {
		c.VC.VCFinder.SetDatacenter(datacenter)
		network, err := c.VC.VCFinder.Network(ctx, name)
		if err == nil {
			return network, nil
		}
	}
	return nil, &errs.ResourceNotFoundError{Kind: "port group", Name: name}
}

func (c *VSphereClient) GetClusterByName(ctx context.Context, name string) (*object.ClusterComputeResource, error) {
	datacenters, err := c.VC.GetDatacenters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list datacenters")
	}
	for _, datacenter := range datacenters {
		c.VC.VCFinder.SetDatacenter(datacenter)
		cluster, err := c.VC.VCFinder.ClusterComputeResource(ctx, name)
		if err == nil {
			return cluster, nil
		}
	}
	return nil, &errs.ResourceNotFoundError{Kind: "cluster", Name: name}
}

// DatastoreMountedOnHost reports whether the datastore is visible from
// the host the VM currently runs on.
func (c *VSphereClient) DatastoreMountedOnHost(ctx context.Context, ds *object.Datastore, vm *object.VirtualMachine) (bool, error) {
	var vmProps mo.VirtualMachine
	err := vm.Properties(ctx, vm.Reference(), []string{"runtime.host"}, &vmProps)
	if err != nil {
		return false, errors.Wrap(err, "failed to get VM host")
	}
	if vmProps.Runtime.Host == nil {
		return false, errors.New("VM has no host assigned")
	}

	var dsProps mo.Datastore
	err = ds.Properties(ctx, ds.Reference(), []string{"host"}, &dsProps)
	if err != nil {
		return false, errors.Wrap(err, "failed to get datastore host mounts")
	}
	for _, mount := range dsProps.Host {
		if mount.Key == *vmProps.Runtime.Host {
			return true, nil
		}
	}
	return false, nil
}

func (c *VSphereClient) UsedSpaceGB(ctx context.Context, vm *object.VirtualMachine) (float64, error) {
	var o mo.VirtualMachine
	err := vm.Properties(ctx, vm.Reference(), []string{"summary.storage"}, &o)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get VM storage summary")
	}
	if o.Summary.Storage == nil {
		return 0, errors.New("VM has no storage summary")
	}
	return utils.BytesToGB(o.Summary.Storage.Committed), nil
}

func (c *VSphereClient) FreeSpaceGB(ctx context.Context, ds *object.Datastore) (float64, error) {
	var o mo.Datastore
	err := ds.Properties(ctx, ds.Reference(), []string{"summary"}, &o)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get datastore summary")
	}
	return utils.BytesToGB(o.Summary.FreeSpace), nil
}

func (c *VSphereClient) PowerState(ctx context.Context, vm *object.VirtualMachine) (types.VirtualMachinePowerState, error) {
	return vm.PowerState(ctx)
}

// SubmitRelocate starts a storage relocation of the VM onto the target
// datastore. With thin set, disks are transformed to thin provisioning
// as they land.
func (c *VSphereClient) SubmitRelocate(ctx context.Context, vm *object.VirtualMachine, ds *object.Datastore, thin bool) (TaskHandle, error) {
	dsRef := ds.Reference()
	spec := types.VirtualMachineRelocateSpec{
		Datastore: &dsRef,
	}
	if thin {
		spec.Transform = types.VirtualMachineRelocateTransformationSparse
	}
	task, err := vm.Relocate(ctx, spec, types.VirtualMachineMovePriorityDefaultPriority)
	if err != nil {
		return TaskHandle{}, &errs.PlatformOperationError{Op: "relocate", Err: err}
	}
	return TaskHandle{Ref: task.Reference()}, nil
}

// LocateVmxFile searches "[datastore] vmName" for the VM's configuration
// file. An empty search result means the relocation did not produce the
// layout the register step expects.
func (c *VSphereClient) LocateVmxFile(ctx context.Context, ds *object.Datastore, vmName string) (string, error) {
	browser, err := ds.Browser(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get datastore browser")
	}
	spec := types.HostDatastoreBrowserSearchSpec{
		MatchPattern: []string{constants.VmxSearchPattern},
	}
	folder := ds.Path(vmName)
	task, err := browser.SearchDatastore(ctx, folder, &spec)
	if err != nil {
		return "", errors.Wrapf(err, "failed to search %s", folder)
	}
	info, err := task.WaitForResult(ctx, nil)
	if err != nil {
		return "", &errs.ResourceNotFoundError{Kind: "VM configuration file", Name: folder}
	}
	res, ok := info.Result.(types.HostDatastoreBrowserSearchResults)
	if !ok || len(res.File) == 0 {
		return "", &errs.ResourceNotFoundError{Kind: "VM configuration file", Name: folder}
	}
	return strings.TrimSuffix(res.FolderPath, "/") + "/" + res.File[0].GetFileInfo().Path, nil
}

// SubmitRegister adds the VM at vmxPath to the inventory of the named
// cluster's resource pool.
func (c *VSphereClient) SubmitRegister(ctx context.Context, vmxPath, vmName, clusterName string) (TaskHandle, error) {
	datacenters, err := c.VC.GetDatacenters(ctx)
	if err != nil {
		return TaskHandle{}, errors.Wrap(err, "failed to list datacenters")
	}
	for _, datacenter := range datacenters {
		c.VC.VCFinder.SetDatacenter(datacenter)
		cluster, err := c.VC.VCFinder.ClusterComputeResource(ctx, clusterName)
		if err != nil {
			continue
		}
		pool, err := cluster.ResourcePool(ctx)
		if err != nil {
			return TaskHandle{}, errors.Wrapf(err, "failed to get resource pool of cluster %s", clusterName)
		}
		folders, err := datacenter.Folders(ctx)
		if err != nil {
			return TaskHandle{}, errors.Wrap(err, "failed to get datacenter folders")
		}
		task, err := folders.VmFolder.RegisterVM(ctx, vmxPath, vmName, false, pool, nil)
		if err != nil {
			return TaskHandle{}, &errs.PlatformOperationError{Op: "register", Err: err}
		}
		return TaskHandle{Ref: task.Reference()}, nil
	}
	return TaskHandle{}, &errs.ResourceNotFoundError{Kind: "cluster", Name: clusterName}
}

// SubmitReconfigureNetwork moves the VM's first network adapter onto the
// given port group. The resulting reconfigure task is not handed back;
// callers await it through the recent-task list by entity name.
func (c *VSphereClient) SubmitReconfigureNetwork(ctx context.Context, vm *object.VirtualMachine, network object.NetworkReference) error {
	devices, err := vm.Device(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get VM devices")
	}
	nics := devices.SelectByType((*types.VirtualEthernetCard)(nil))
	if len(nics) == 0 {
		return errors.New("VM has no network adapter")
	}
	backing, err := network.EthernetCardBackingInfo(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get port group backing info")
	}
	nic := nics[0].(types.BaseVirtualEthernetCard).GetVirtualEthernetCard()
	nic.Backing = backing

	spec := types.VirtualMachineConfigSpec{
		DeviceChange: []types.BaseVirtualDeviceConfigSpec{
			&types.VirtualDeviceConfigSpec{
				Operation: types.VirtualDeviceConfigSpecOperationEdit,
				Device:    nics[0],
			},
		},
	}
	_, err = vm.Reconfigure(ctx, spec)
	if err != nil {
		return &errs.PlatformOperationError{Op: "reconfigure network", Err: err}
	}
	return nil
}

// SubmitPowerOn starts the VM. The power-on task is awaited through the
// recent-task list by entity name.
func (c *VSphereClient) SubmitPowerOn(ctx context.Context, vm *object.VirtualMachine) error {
	_, err := vm.PowerOn(ctx)
	if err != nil {
		return &errs.PlatformOperationError{Op: "power on", Err: err}
	}
	return nil
}

func (c *VSphereClient) GuestState(ctx context.Context, vm *object.VirtualMachine) (string, error) {
	var o mo.VirtualMachine
	err := vm.Properties(ctx, vm.Reference(), []string{"guest.guestState"}, &o)
	if err != nil {
		return "", errors.Wrap(err, "failed to get guest state")
	}
	if o.Guest == nil {
		return "", nil
	}
	return o.Guest.GuestState, nil
}

func (c *VSphereClient) ToolsStatus(ctx context.Context, vm *object.VirtualMachine) (types.VirtualMachineToolsVersionStatus, error) {
	var o mo.VirtualMachine
	err := vm.Properties(ctx, vm.Reference(), []string{"guest.toolsVersionStatus2"}, &o)
	if err != nil {
		return "", errors.Wrap(err, "failed to get tools status")
	}
	if o.Guest == nil || o.Guest.ToolsVersionStatus2 == "" {
		return types.VirtualMachineToolsVersionStatusGuestToolsNotInstalled, nil
	}
	return types.VirtualMachineToolsVersionStatus(o.Guest.ToolsVersionStatus2), nil
}

// SubmitToolsUpgrade requests a guest tools upgrade without a reboot and
// does not wait for it to finish.
func (c *VSphereClient) SubmitToolsUpgrade(ctx context.Context, vm *object.VirtualMachine) error {
	_, err := vm.UpgradeTools(ctx, "")
	if err != nil {
		return &errs.PlatformOperationError{Op: "tools upgrade", Err: err}
	}
	return nil
}

// Pingable sends a single ICMP echo probe to the address.
func (c *VSphereClient) Pingable(ctx context.Context, ip string) (bool, error) {
	pinger, err := probing.NewPinger(ip)
	if err != nil {
		return false, errors.Wrap(err, "failed to create pinger")
	}
	pinger.Count = 1
	pinger.Timeout = constants.PingProbeTimeout
	if err := pinger.RunWithContext(ctx); err != nil {
		return false, nil
	}
	return pinger.Statistics().PacketsRecv > 0, nil
}

func (c *VSphereClient) TaskStatus(ctx context.Context, h TaskHandle) (TaskStatus, error) {
	var t mo.Task
	err := c.VC.VCPropertyCollector.RetrieveOne(ctx, h.Ref, []string{"info"}, &t)
	if err != nil {
		return TaskStatus{}, errors.Wrap(err, "failed to get task info")
	}
	status := TaskStatus{State: t.Info.State, Progress: t.Info.Progress}
	if t.Info.Error != nil {
		status.Message = t.Info.Error.LocalizedMessage
	}
	return status, nil
}

func (c *VSphereClient) CancelTask(ctx context.Context, h TaskHandle) error {
	return object.NewTask(c.VC.VCClient, h.Ref).Cancel(ctx)
}

// RecentTasks returns a snapshot of the endpoint's recent-task list.
func (c *VSphereClient) RecentTasks(ctx context.Context) ([]TaskSnapshot, error) {
	c.taskListMu.Lock()
	defer c.taskListMu.Unlock()

	var tm mo.TaskManager
	err := c.VC.VCPropertyCollector.RetrieveOne(ctx, *c.VC.VCClient.ServiceContent.TaskManager, []string{"recentTask"}, &tm)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent task list")
	}
	if len(tm.RecentTask) == 0 {
		return nil, nil
	}
	var tasks []mo.Task
	err = c.VC.VCPropertyCollector.Retrieve(ctx, tm.RecentTask, []string{"info"}, &tasks)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent task info")
	}
	snapshots := make([]TaskSnapshot, 0, len(tasks))
	for _, t := range tasks {
		snapshots = append(snapshots, TaskSnapshot{
			Handle:        TaskHandle{Ref: t.Self},
			DescriptionID: t.Info.DescriptionId,
			EntityName:    t.Info.EntityName,
		})
	}
	return snapshots, nil
}
