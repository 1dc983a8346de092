package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// DefaultSampleInterval is the window CPU usage is measured over.
const DefaultSampleInterval = time.Second

// Overridden in tests.
var (
	cpuCounts = cpu.CountsWithContext
	cpuTimes  = cpu.TimesWithContext
	cpuFreq   = cpuFrequency
	sleep     = sleepContext
)

// GetCPUInfo collects core counts, clock frequencies and usage. Usage is
// measured over one blocking interval shared by the per-core and aggregate
// figures. An unknown physical core count is left invalid; any other failure
// fails the whole group.
func GetCPUInfo(ctx context.Context, interval time.Duration) Result[CPU] {
	info, err := collectCPU(ctx, interval)
	if err != nil {
		return Fail[CPU](failed("get CPU info", err))
	}
	return OK(info)
}

func collectCPU(ctx context.Context, interval time.Duration) (CPU, error) {
	cores, err := cpuCounts(ctx, false)
	if err != nil {
		return CPU{}, fmt.Errorf("physical cores: %w", err)
	}
	// Some ARM hosts and containers report no physical topology.
	var physical Count
	if cores > 0 {
		physical = KnownCount(cores)
	}

	logical, err := cpuCounts(ctx, true)
	if err != nil {
		return CPU{}, fmt.Errorf("logical cores: %w", err)
	}

	cur, min, max := cpuFreq(ctx)

	perCore, total, err := sampleUsage(ctx, interval)
	if err != nil {
		return CPU{}, err
	}

	return CPU{
		PhysicalCores: physical,
		LogicalCores:  logical,
		MaxFreqMHz:    max,
		MinFreqMHz:    min,
		CurFreqMHz:    cur,
		PerCoreUsage:  perCore,
		TotalUsage:    total,
	}, nil
}

// sampleUsage reads per-CPU and aggregate times, waits interval, reads them
// again and returns busy percentages rounded to one decimal.
func sampleUsage(ctx context.Context, interval time.Duration) ([]float64, float64, error) {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}

	perBefore, err := cpuTimes(ctx, true)
	if err != nil {
		return nil, 0, fmt.Errorf("per-cpu times: %w", err)
	}
	allBefore, err := cpuTimes(ctx, false)
	if err != nil {
		return nil, 0, fmt.Errorf("cpu times: %w", err)
	}

	if err := sleep(ctx, interval); err != nil {
		return nil, 0, err
	}

	perAfter, err := cpuTimes(ctx, true)
	if err != nil {
		return nil, 0, fmt.Errorf("per-cpu times: %w", err)
	}
	allAfter, err := cpuTimes(ctx, false)
	if err != nil {
		return nil, 0, fmt.Errorf("cpu times: %w", err)
	}

	if len(perBefore) != len(perAfter) {
		return nil, 0, fmt.Errorf("cpu count changed while sampling (%d -> %d)", len(perBefore), len(perAfter))
	}
	if len(allBefore) == 0 || len(allAfter) == 0 {
		return nil, 0, errors.New("no cpu stats retrieved (empty results)")
	}

	perCore := make([]float64, len(perAfter))
	for i := range perAfter {
		perCore[i] = round(busyPercent(perBefore[i], perAfter[i]), 1)
	}

	return perCore, round(busyPercent(allBefore[0], allAfter[0]), 1), nil
}

func busyPercent(before, after cpu.TimesStat) float64 {
	b1, t1 := busyTotal(before)
	b2, t2 := busyTotal(after)

	if t2 <= t1 {
		return 0
	}
	if b2 <= b1 {
		return 0
	}

	pct := (b2 - b1) / (t2 - t1) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func busyTotal(t cpu.TimesStat) (busy, total float64) {
	total = t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
	busy = total - t.Idle - t.Iowait
	return busy, total
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
