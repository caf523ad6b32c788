// Copyright © 2024 The vmshuttle authors

package platform

import (
	"context"
	"log"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/property"
	"github.com/vmware/govmomi/simulator"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/vcenter"
)

func simulateVSphere() (*VSphereClient, *simulator.Model, *simulator.Server) {
	model := simulator.VPX()
	err := model.Create()
	if err != nil {
		log.Fatal(err)
	}
	server := model.Service.NewServer()

	u, err := soap.ParseURL(server.URL.String())
	if err != nil {
		log.Fatal(err)
	}
	u.User = url.UserPassword("user", "pass")
	ctx := context.Background()

	client, err := govmomi.NewClient(ctx, u, true)
	if err != nil {
		log.Fatal(err)
	}
	vc := &vcenter.VCenterClient{
		VCClient:            client.Client,
		VCFinder:            find.NewFinder(client.Client, false),
		VCPropertyCollector: property.DefaultCollector(client.Client),
	}
	return NewVSphereClient(vc), model, server
}

func cleanupSimulator(model *simulator.Model, server *simulator.Server) {
	model.Remove()
	server.Close()
}

func TestGetVMByName(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	assert.NotNil(t, vm)

	vm, err = c.GetVMByName(ctx, "no-such-vm")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "no-such-vm", notFound.Name)
	assert.Nil(t, vm)
}

func TestGetDatastoreByName(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	ds, err := c.GetDatastoreByName(ctx, "LocalDS_0")
	assert.NoError(t, err)
	assert.NotNil(t, ds)

	_, err = c.GetDatastoreByName(ctx, "no-such-datastore")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "datastore", notFound.Kind)
}

func TestGetPortGroupByName(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	pg, err := c.GetPortGroupByName(ctx, "VM Network")
	assert.NoError(t, err)
	assert.NotNil(t, pg)

	_, err = c.GetPortGroupByName(ctx, "no-such-portgroup")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestGetClusterByName(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	cluster, err := c.GetClusterByName(ctx, "DC0_C0")
	assert.NoError(t, err)
	assert.NotNil(t, cluster)

	_, err = c.GetClusterByName(ctx, "no-such-cluster")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDatastoreMountedOnHost(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	ds, err := c.GetDatastoreByName(ctx, "LocalDS_0")
	assert.NoError(t, err)

	mounted, err := c.DatastoreMountedOnHost(ctx, ds, vm)
	assert.NoError(t, err)
	assert.True(t, mounted)
}

func TestCapacityQueries(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	ds, err := c.GetDatastoreByName(ctx, "LocalDS_0")
	assert.NoError(t, err)

	used, err := c.UsedSpaceGB(ctx, vm)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, used, 0.0)

	free, err := c.FreeSpaceGB(ctx, ds)
	assert.NoError(t, err)
	assert.Greater(t, free, 0.0)
}

func TestPowerState(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)

	state, err := c.PowerState(ctx, vm)
	assert.NoError(t, err)
	assert.Equal(t, types.VirtualMachinePowerStatePoweredOn, state)
}

func TestLocateVmxFile(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	ds, err := c.GetDatastoreByName(ctx, "LocalDS_0")
	assert.NoError(t, err)

	path, err := c.LocateVmxFile(ctx, ds, "DC0_H0_VM0")
	assert.NoError(t, err)
	assert.Contains(t, path, "DC0_H0_VM0")
	assert.True(t, strings.HasSuffix(path, ".vmx"))

	_, err = c.LocateVmxFile(ctx, ds, "no-such-vm")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "VM configuration file", notFound.Kind)
}

func TestSubmitReconfigureNetwork(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	pg, err := c.GetPortGroupByName(ctx, "VM Network")
	assert.NoError(t, err)

	assert.NoError(t, c.SubmitReconfigureNetwork(ctx, vm, pg))
}

// awaitSuccess polls the handle until the task reaches a terminal state.
func awaitSuccess(ctx context.Context, t *testing.T, c *VSphereClient, h TaskHandle) {
	for i := 0; i < 100; i++ {
		status, err := c.TaskStatus(ctx, h)
		assert.NoError(t, err)
		switch status.State {
		case types.TaskInfoStateSuccess:
			return
		case types.TaskInfoStateError:
			t.Fatalf("task failed: %s", status.Message)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("task did not complete")
}

func TestSubmitRelocateAndTaskStatus(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	ds, err := c.GetDatastoreByName(ctx, "LocalDS_0")
	assert.NoError(t, err)

	handle, err := c.SubmitRelocate(ctx, vm, ds, true)
	assert.NoError(t, err)
	assert.False(t, handle.IsZero())
	awaitSuccess(ctx, t, c, handle)
}

func TestRecentTasksListsVMOperations(t *testing.T) {
	c, model, server := simulateVSphere()
	defer cleanupSimulator(model, server)
	ctx := context.Background()

	vm, err := c.GetVMByName(ctx, "DC0_H0_VM0")
	assert.NoError(t, err)
	task, err := vm.PowerOff(ctx)
	assert.NoError(t, err)
	assert.NoError(t, task.Wait(ctx))

	assert.NoError(t, c.SubmitPowerOn(ctx, vm))

	// the power-on just submitted must be discoverable by entity name
	found := false
	for i := 0; i < 100 && !found; i++ {
		snapshots, err := c.RecentTasks(ctx)
		assert.NoError(t, err)
		for _, s := range snapshots {
			if s.EntityName == "DC0_H0_VM0" && !s.Handle.IsZero() {
				found = true
				break
			}
		}
		if !found {
			time.Sleep(10 * time.Millisecond)
		}
	}
	assert.True(t, found)
}
