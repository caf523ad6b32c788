// Copyright © 2024 The vmshuttle authors

package preflight

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/vmshuttle/vmshuttle/batch"
	"github.com/vmshuttle/vmshuttle/pkg/errs"
	"github.com/vmshuttle/vmshuttle/platform"
)

var testRequest = batch.MigrationRequest{
	VMName:             "app01",
	SourceStagingStore: "nfs-a",
	TargetIP:           "10.0.0.5",
	DestStagingStore:   "nfs-b",
	DestNetwork:        "pg-prod",
	DestFinalStore:     "ds-final",
}

func expectHealthySource(src *platform.MockClient, freeGB float64) (*object.VirtualMachine, *object.Datastore) {
	vm := &object.VirtualMachine{}
	ds := &object.Datastore{}
	src.EXPECT().GetVMByName(gomock.Any(), "app01").Return(vm, nil).AnyTimes()
	src.EXPECT().PowerState(gomock.Any(), vm).Return(types.VirtualMachinePowerStatePoweredOff, nil).AnyTimes()
	src.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-a").Return(ds, nil).AnyTimes()
	src.EXPECT().DatastoreMountedOnHost(gomock.Any(), ds, vm).Return(true, nil).AnyTimes()
	src.EXPECT().UsedSpaceGB(gomock.Any(), vm).Return(10.004, nil).AnyTimes()
	src.EXPECT().FreeSpaceGB(gomock.Any(), ds).Return(freeGB, nil).AnyTimes()
	return vm, ds
}

func expectHealthyDest(dst *platform.MockClient) {
	dst.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-b").Return(&object.Datastore{}, nil).AnyTimes()
	dst.EXPECT().GetDatastoreByName(gomock.Any(), "ds-final").Return(&object.Datastore{}, nil).AnyTimes()
	dst.EXPECT().GetPortGroupByName(gomock.Any(), "pg-prod").Return(&object.Network{}, nil).AnyTimes()
	dst.EXPECT().GetClusterByName(gomock.Any(), "prod-cluster").Return(&object.ClusterComputeResource{}, nil).AnyTimes()
}

func TestValidatePasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	expectHealthySource(src, 100.0)
	expectHealthyDest(dst)

	err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
	assert.NoError(t, err)
}

func TestValidateIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	expectHealthySource(src, 100.0)
	expectHealthyDest(dst)

	assert.NoError(t, Validate(context.Background(), testRequest, src, dst, "prod-cluster"))
	assert.NoError(t, Validate(context.Background(), testRequest, src, dst, "prod-cluster"))
}

func TestValidateRejectsRunningVM(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	vm := &object.VirtualMachine{}
	src.EXPECT().GetVMByName(gomock.Any(), "app01").Return(vm, nil)
	src.EXPECT().PowerState(gomock.Any(), vm).Return(types.VirtualMachinePowerStatePoweredOn, nil)

	err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
	assert.ErrorContains(t, err, "only powered-off VMs")
}

func TestValidateMissingVM(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	src.EXPECT().GetVMByName(gomock.Any(), "app01").
		Return(nil, &errs.ResourceNotFoundError{Kind: "virtual machine", Name: "app01"})

	err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "app01", notFound.Name)
}

func TestValidateDatastoreNotMounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	vm := &object.VirtualMachine{}
	ds := &object.Datastore{}
	src.EXPECT().GetVMByName(gomock.Any(), "app01").Return(vm, nil)
	src.EXPECT().PowerState(gomock.Any(), vm).Return(types.VirtualMachinePowerStatePoweredOff, nil)
	src.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-a").Return(ds, nil)
	src.EXPECT().DatastoreMountedOnHost(gomock.Any(), ds, vm).Return(false, nil)

	err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
	var notFound *errs.ResourceNotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "host-visible datastore", notFound.Kind)
}

func TestValidateCapacityBoundary(t *testing.T) {
	// used=10.004 rounds to 10.00; free=9.99 fails, free=10.00 passes
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := platform.NewMockClient(ctrl)
	dst := platform.NewMockClient(ctrl)
	expectHealthySource(src, 9.99)
	expectHealthyDest(dst)

	err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
	var capErr *errs.InsufficientCapacityError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, 9.99, capErr.FreeGB)
	assert.Equal(t, 10.00, capErr.RequiredGB)

	src2 := platform.NewMockClient(ctrl)
	dst2 := platform.NewMockClient(ctrl)
	expectHealthySource(src2, 10.00)
	expectHealthyDest(dst2)

	assert.NoError(t, Validate(context.Background(), testRequest, src2, dst2, "prod-cluster"))
}

func TestValidateMissingDestResources(t *testing.T) {
	cases := []struct {
		name    string
		missing string
	}{
		{"staging datastore", "nfs-b"},
		{"final datastore", "ds-final"},
		{"port group", "pg-prod"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := platform.NewMockClient(ctrl)
			dst := platform.NewMockClient(ctrl)
			expectHealthySource(src, 100.0)

			notFound := &errs.ResourceNotFoundError{Kind: tc.name, Name: tc.missing}
			switch tc.missing {
			case "nfs-b":
				dst.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-b").Return(nil, notFound)
			case "ds-final":
				dst.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-b").Return(&object.Datastore{}, nil)
				dst.EXPECT().GetDatastoreByName(gomock.Any(), "ds-final").Return(nil, notFound)
			case "pg-prod":
				dst.EXPECT().GetDatastoreByName(gomock.Any(), "nfs-b").Return(&object.Datastore{}, nil)
				dst.EXPECT().GetDatastoreByName(gomock.Any(), "ds-final").Return(&object.Datastore{}, nil)
				dst.EXPECT().GetPortGroupByName(gomock.Any(), "pg-prod").Return(nil, notFound)
			}

			err := Validate(context.Background(), testRequest, src, dst, "prod-cluster")
			var got *errs.ResourceNotFoundError
			assert.True(t, errors.As(err, &got))
			assert.Equal(t, tc.missing, got.Name)
		})
	}
}
