// Copyright © 2024 The vmshuttle authors

package errs

import (
	"fmt"
	"time"
)

type ResourceNotFoundError struct {
	Kind string // "virtual machine", "datastore", "port group", "cluster"
	Name string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

type InsufficientCapacityError struct {
	Datastore  string
	FreeGB     float64
	RequiredGB float64
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity on datastore %s: %.2f GB free, %.2f GB required",
		e.Datastore, e.FreeGB, e.RequiredGB)
}

type TaskFailedError struct {
	Op      string
	Message string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.Op, e.Message)
}

type TaskTimeoutError struct {
	Op       string
	Polls    int
	Interval time.Duration
}

func (e *TaskTimeoutError) Error() string {
	return fmt.Sprintf("task %s did not complete within %d polls at %s intervals",
		e.Op, e.Polls, e.Interval)
}

type ConnectivityCheckFailedError struct {
	IP       string
	Attempts int
}

func (e *ConnectivityCheckFailedError) Error() string {
	return fmt.Sprintf("VM is not reachable at %s after %d probes", e.IP, e.Attempts)
}

type GuestNotReadyError struct {
	VM     string
	Waited time.Duration
}

func (e *GuestNotReadyError) Error() string {
	return fmt.Sprintf("guest OS of VM %s did not report running within %s", e.VM, e.Waited)
}

type PlatformOperationError struct {
	Op  string
	Err error
}

func (e *PlatformOperationError) Error() string {
	return fmt.Sprintf("platform operation %s failed: %v", e.Op, e.Err)
}

func (e *PlatformOperationError) Unwrap() error {
	return e.Err
}
