package collector

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-specs/internal/record"
)

// fakeHost replaces every host query with canned data for the duration of t.
func fakeHost(t *testing.T) {
	t.Helper()

	origHost, origCPUInfo, origKernel, origFirmware := hostInfo, cpuInfo, kernelVersion, firmwareProcessor
	origCounts, origTimes, origFreq, origSleep := cpuCounts, cpuTimes, cpuFreq, sleep
	origMem, origParts, origUsage := virtualMemory, diskPartitions, diskUsage
	t.Cleanup(func() {
		hostInfo, cpuInfo, kernelVersion, firmwareProcessor = origHost, origCPUInfo, origKernel, origFirmware
		cpuCounts, cpuTimes, cpuFreq, sleep = origCounts, origTimes, origFreq, origSleep
		virtualMemory, diskPartitions, diskUsage = origMem, origParts, origUsage
	})

	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{Hostname: "node-1", KernelVersion: "6.8.0-45-generic", KernelArch: "x86_64"}, nil
	}
	cpuInfo = func(context.Context) ([]cpu.InfoStat, error) {
		return []cpu.InfoStat{{ModelName: "Test CPU @ 3.00GHz", Mhz: 3000}}, nil
	}
	kernelVersion = func() (string, error) { return "#1 SMP PREEMPT_DYNAMIC", nil }
	firmwareProcessor = func() string { return "" }

	cpuCounts = func(_ context.Context, logical bool) (int, error) {
		if logical {
			return 4, nil
		}
		return 2, nil
	}
	calls := 0
	cpuTimes = func(_ context.Context, percpu bool) ([]cpu.TimesStat, error) {
		calls++
		after := calls > 2
		if percpu {
			if after {
				return []cpu.TimesStat{{User: 60, Idle: 140}, {User: 10, Idle: 190}}, nil
			}
			return []cpu.TimesStat{{User: 10, Idle: 90}, {User: 10, Idle: 90}}, nil
		}
		if after {
			return []cpu.TimesStat{{User: 70, Idle: 330}}, nil
		}
		return []cpu.TimesStat{{User: 20, Idle: 180}}, nil
	}
	cpuFreq = func(context.Context) (Reading, Reading, Reading) {
		return Known(2400), Known(800), Known(3600)
	}
	sleep = func(context.Context, time.Duration) error { return nil }

	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{
			Total:       16 * bytesPerGB,
			Available:   10*bytesPerGB + bytesPerGB/4,
			Used:        5*bytesPerGB + bytesPerGB/3,
			UsedPercent: 35.96,
		}, nil
	}
	diskPartitions = func(context.Context, bool) ([]disk.PartitionStat, error) {
		return []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
			{Device: "/dev/sr0", Mountpoint: "/media/cdrom", Fstype: "iso9660"},
		}, nil
	}
	diskUsage = func(_ context.Context, path string) (*disk.UsageStat, error) {
		if path == "/media/cdrom" {
			return nil, errors.New("permission denied")
		}
		return &disk.UsageStat{Total: 100 * bytesPerGB, Used: 40 * bytesPerGB, Free: 60 * bytesPerGB, UsedPercent: 40}, nil
	}
}

func testLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

func TestGetCPUInfoOnHost(t *testing.T) {
	res := GetCPUInfo(context.Background(), 50*time.Millisecond)
	info, err := res.Value()
	if err != nil {
		t.Skipf("cpu facts not readable here: %v", err)
	}
	if info.PhysicalCores.Valid {
		assert.GreaterOrEqual(t, info.LogicalCores, info.PhysicalCores.Value)
	}
	assert.Greater(t, info.LogicalCores, 0)
	assert.NotEmpty(t, info.PerCoreUsage)
}

func TestGetCPUInfo(t *testing.T) {
	fakeHost(t)

	info, err := GetCPUInfo(context.Background(), time.Second).Value()
	require.NoError(t, err)

	assert.Equal(t, KnownCount(2), info.PhysicalCores)
	assert.Equal(t, 4, info.LogicalCores)
	assert.Equal(t, []float64{50, 0}, info.PerCoreUsage)
	assert.Equal(t, 25.0, info.TotalUsage)
	assert.Equal(t, Known(3600), info.MaxFreqMHz)
	assert.Equal(t, Known(800), info.MinFreqMHz)
	assert.Equal(t, Known(2400), info.CurFreqMHz)
}

func TestGetCPUInfoUnknownPhysicalCores(t *testing.T) {
	fakeHost(t)
	cpuCounts = func(_ context.Context, logical bool) (int, error) {
		if logical {
			return 4, nil
		}
		return 0, nil
	}

	res := GetCPUInfo(context.Background(), time.Second)
	info, err := res.Value()
	require.NoError(t, err)
	assert.False(t, info.PhysicalCores.Valid)
	assert.Equal(t, 4, info.LogicalCores)
	assert.Equal(t, 25.0, info.TotalUsage)

	v := cpuRecord(res)
	phys, _ := v.Get("Physical cores")
	assert.Equal(t, NotAvailable, phys.Interface())
	total, _ := v.Get("Total cores")
	assert.Equal(t, int64(4), total.Interface())
	assert.False(t, v.Has("Error"))
}

func TestGetCPUInfoFailureCollapsesGroup(t *testing.T) {
	fakeHost(t)
	cpuCounts = func(context.Context, bool) (int, error) { return 0, errors.New("no topology") }

	res := GetCPUInfo(context.Background(), time.Second)
	require.Error(t, res.Err())

	var cerr *CollectionError
	require.ErrorAs(t, res.Err(), &cerr)
	assert.Equal(t, "get CPU info", cerr.Op)
	assert.Equal(t, "Failed to get CPU info: physical cores: no topology", res.Err().Error())
}

func TestGetCPUInfoCancelledDuringSample(t *testing.T) {
	fakeHost(t)
	sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := GetCPUInfo(ctx, time.Hour)
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestGetOSInfo(t *testing.T) {
	fakeHost(t)

	info, err := GetOSInfo(context.Background()).Value()
	require.NoError(t, err)

	assert.Equal(t, "node-1", info.NodeName)
	assert.Equal(t, "6.8.0-45-generic", info.Release)
	assert.Equal(t, "#1 SMP PREEMPT_DYNAMIC", info.Version)
	assert.Equal(t, "x86_64", info.Machine)
	assert.Equal(t, "Test CPU @ 3.00GHz", info.Processor)
	assert.NotEmpty(t, info.System)
}

func TestGetOSInfoProcessorFallback(t *testing.T) {
	fakeHost(t)
	cpuInfo = func(context.Context) ([]cpu.InfoStat, error) { return nil, errors.New("no cpuinfo") }

	firmwareProcessor = func() string { return "ARMv8 Processor" }
	info, err := GetOSInfo(context.Background()).Value()
	require.NoError(t, err)
	assert.Equal(t, "ARMv8 Processor", info.Processor)

	firmwareProcessor = func() string { return "" }
	info, err = GetOSInfo(context.Background()).Value()
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, info.Processor)
}

func TestGetOSInfoFailure(t *testing.T) {
	fakeHost(t)
	hostInfo = func(context.Context) (*host.InfoStat, error) { return nil, errors.New("boom") }

	rep := &Report{OS: GetOSInfo(context.Background())}
	assert.Equal(t,
		record.Mapping(record.KV("Error", "Failed to get OS info: boom")),
		osRecord(rep.OS))
}

func TestSystemName(t *testing.T) {
	tests := map[string]string{
		"linux":   "Linux",
		"darwin":  "Darwin",
		"windows": "Windows",
		"plan9":   "Plan9",
		"":        NotAvailable,
	}
	for goos, want := range tests {
		assert.Equal(t, want, systemName(goos), goos)
	}
}

func TestGetMemoryInfo(t *testing.T) {
	fakeHost(t)

	m, err := GetMemoryInfo(context.Background()).Value()
	require.NoError(t, err)

	assert.Equal(t, 16.0, m.TotalGB)
	assert.Equal(t, 10.25, m.AvailableGB)
	assert.Equal(t, 5.33, m.UsedGB)
	assert.Equal(t, 36.0, m.Percent)
}

func TestGetDiskInfoIsolatesPartitionFailures(t *testing.T) {
	fakeHost(t)

	parts, err := GetDiskInfo(context.Background()).Value()
	require.NoError(t, err)
	require.Len(t, parts, 2)

	assert.NoError(t, parts[0].Err)
	assert.Equal(t, 100.0, parts[0].TotalGB)
	assert.Equal(t, 40.0, parts[0].UsedGB)
	assert.Equal(t, 60.0, parts[0].FreeGB)

	assert.Equal(t, "/dev/sr0", parts[1].Device)
	assert.EqualError(t, parts[1].Err, "Failed to read partition: permission denied")

	assert.Equal(t, record.Sequence(
		record.Mapping(
			record.KV("Device", "/dev/sda1"),
			record.KV("Mountpoint", "/"),
			record.KV("File system type", "ext4"),
			record.KV("Total Size (GB)", 100.0),
			record.KV("Used (GB)", 40.0),
			record.KV("Free (GB)", 60.0),
			record.KV("Percentage (%)", 40.0),
		),
		record.Mapping(
			record.KV("Device", "/dev/sr0"),
			record.KV("Error", "Failed to read partition: permission denied"),
		),
	), diskRecord(OK(parts)))
}

func TestGetDiskInfoEnumerationFailure(t *testing.T) {
	fakeHost(t)
	diskPartitions = func(context.Context, bool) ([]disk.PartitionStat, error) {
		return nil, errors.New("no mount table")
	}

	res := GetDiskInfo(context.Background())
	assert.Equal(t,
		record.Sequence(record.Mapping(record.KV("Error", "Failed to get disk info: no mount table"))),
		diskRecord(res))
}

func TestCollect(t *testing.T) {
	fakeHost(t)

	stamp := time.Date(2024, 5, 1, 10, 30, 0, 123456000, time.Local)
	c := New(testLogger(), WithVersion("1.0.0"), WithSampleInterval(time.Millisecond))
	c.now = func() time.Time { return stamp }

	v := c.Collect(context.Background()).Record()

	keys := make([]string, 0, v.Len())
	for _, f := range v.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"Timestamp", "Version", "OS Info", "CPU Info", "Memory Info", "Disk Info", "GPU Info"}, keys)

	ts, _ := v.Get("Timestamp")
	assert.Equal(t, "2024-05-01T10:30:00.123456", ts.Interface())

	ver, _ := v.Get("Version")
	assert.Equal(t, "1.0.0", ver.Interface())

	cpuV, _ := v.Get("CPU Info")
	phys, _ := cpuV.Get("Physical cores")
	assert.Equal(t, int64(2), phys.Interface())

	gpuV, _ := v.Get("GPU Info")
	assert.Equal(t, record.Sequence(record.Mapping(record.KV("Info", GPUNotInstalled))), gpuV)
}

func TestCollectKeepsGoingAfterFailures(t *testing.T) {
	fakeHost(t)
	hostInfo = func(context.Context) (*host.InfoStat, error) { return nil, errors.New("os down") }
	virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errors.New("mem down") }

	rep := New(testLogger(), WithGPU(Available(fakeQuery{err: errors.New("driver mismatch")}))).Collect(context.Background())

	assert.EqualError(t, rep.OS.Err(), "Failed to get OS info: os down")
	assert.EqualError(t, rep.Memory.Err(), "Failed to get memory info: mem down")
	assert.NoError(t, rep.CPU.Err())
	assert.NoError(t, rep.Disk.Err())
	assert.EqualError(t, rep.GPU.Err(), "Failed to get GPU info: driver mismatch")

	v := rep.Record()
	memV, _ := v.Get("Memory Info")
	assert.Equal(t, record.Mapping(record.KV("Error", "Failed to get memory info: mem down")), memV)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.3, round(1.25, 1))
	assert.Equal(t, 0.13, round(0.125, 2))
	assert.Equal(t, 0.0, round(0.004, 2))
	assert.Equal(t, 1.0, toGB(bytesPerGB))
}
