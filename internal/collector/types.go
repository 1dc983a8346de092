package collector

import "time"

// Report holds every fact group collected from the local host.
type Report struct {
	Timestamp time.Time
	Version   string
	OS        Result[OS]
	CPU       Result[CPU]
	Memory    Result[Memory]
	Disk      Result[[]Partition]
	GPU       Result[GPU]
}

// OS holds operating system identity.
type OS struct {
	System    string
	NodeName  string
	Release   string
	Version   string
	Machine   string
	Processor string
}

// CPU holds core counts, clock frequencies and usage sampled over one interval.
type CPU struct {
	PhysicalCores Count
	LogicalCores  int
	MaxFreqMHz    Reading
	MinFreqMHz    Reading
	CurFreqMHz    Reading
	PerCoreUsage  []float64
	TotalUsage    float64
}

// Memory holds virtual memory totals in binary gigabytes.
type Memory struct {
	TotalGB     float64
	AvailableGB float64
	UsedGB      float64
	Percent     float64
}

// Partition holds usage for one mounted filesystem. When Err is set only
// Device is meaningful.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
	TotalGB    float64
	UsedGB     float64
	FreeGB     float64
	Percent    float64
	Err        error
}

// GPU holds the devices reported by the GPU capability. Available is false
// when no telemetry tool exists on the host.
type GPU struct {
	Available bool
	Devices   []GPUDevice
}

// GPUDevice holds telemetry for one device. Load is a fraction in [0, 1].
type GPUDevice struct {
	ID            int
	Name          string
	Driver        string
	MemoryTotalMB Reading
	MemoryUsedMB  Reading
	MemoryFreeMB  Reading
	Load          Reading
	TemperatureC  Reading
}

// Reading is a number the platform may not expose.
type Reading struct {
	Value float64
	Valid bool
}

// Known returns a valid reading.
func Known(v float64) Reading {
	return Reading{Value: v, Valid: true}
}

// Count is a whole number the platform may not expose.
type Count struct {
	Value int
	Valid bool
}

// KnownCount returns a valid count.
func KnownCount(n int) Count {
	return Count{Value: n, Valid: true}
}
