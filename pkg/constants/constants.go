package constants

import "time"

const (
	// Short-poll cadence for configuration-class tasks (register,
	// reconfigure, power-on).
	ShortPollInterval = 2 * time.Second
	ShortPollMaxCount = 30

	// Long-poll cadence for storage relocation tasks. Relocation time
	// scales with disk size and link speed, so the budget is generous.
	LongPollInterval = 120 * time.Second
	LongPollMaxCount = 120

	// Interval and budget for waiting on the guest OS to report running
	// after power-on.
	GuestStatePollInterval = 5 * time.Second
	GuestStatePollMaxCount = 120

	// Grace period after power-on when no guest agent is installed and
	// no other readiness signal is available.
	ToolsMissingGracePeriod = 60 * time.Second

	// Reachability probing of the target IP after power-on.
	PingAttempts      = 3
	PingRetryInterval = 5 * time.Second
	PingProbeTimeout  = 5 * time.Second

	// Task description IDs used to locate in-flight tasks by entity name
	// when the platform does not hand back a task reference directly.
	TaskKindReconfigureVM = "VirtualMachine.reconfigure"
	TaskKindPowerOnVM     = "VirtualMachine.powerOn"

	// Guest state value reported once the guest OS is up.
	GuestStateRunning = "running"

	// Pattern used to locate a VM's configuration file inside the
	// staging datastore.
	VmxSearchPattern = "*.vmx"
)
