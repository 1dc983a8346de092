package collector

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/disk"
)

var (
	diskPartitions = disk.PartitionsWithContext
	diskUsage      = disk.UsageWithContext
)

// GetDiskInfo collects usage for every mounted partition. A partition whose
// usage cannot be read carries its own error and does not affect the others;
// only a failed enumeration fails the group.
func GetDiskInfo(ctx context.Context) Result[[]Partition] {
	parts, err := diskPartitions(ctx, false)
	if err != nil {
		return Fail[[]Partition](failed("get disk info", err))
	}

	out := make([]Partition, 0, len(parts))
	for _, p := range parts {
		out = append(out, readPartition(ctx, p))
	}
	return OK(out)
}

func readPartition(ctx context.Context, p disk.PartitionStat) Partition {
	usage, err := diskUsage(ctx, p.Mountpoint)
	if err == nil && usage == nil {
		err = errors.New("no usage statistics returned")
	}
	if err != nil {
		return Partition{Device: p.Device, Err: failed("read partition", err)}
	}

	return Partition{
		Device:     p.Device,
		Mountpoint: p.Mountpoint,
		Fstype:     p.Fstype,
		TotalGB:    toGB(usage.Total),
		UsedGB:     toGB(usage.Used),
		FreeGB:     toGB(usage.Free),
		Percent:    round(usage.UsedPercent, 1),
	}
}
