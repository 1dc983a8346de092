package collector

import (
	"github.com/go-tangra/go-tangra-specs/internal/record"
)

// Placeholder texts for the GPU group.
const (
	GPUNotInstalled = "GPUtil package not installed"
	GPUNoneDetected = "No GPUs detected"
)

// TimestampLayout is ISO-8601 on the local clock with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Record converts the report into its nested form. Failed groups and items
// collapse into single-key {"Error": ...} mappings here; no key is omitted.
func (r *Report) Record() record.Value {
	return record.Mapping(
		record.KV("Timestamp", r.Timestamp.Format(TimestampLayout)),
		record.KV("Version", r.Version),
		record.Nested("OS Info", osRecord(r.OS)),
		record.Nested("CPU Info", cpuRecord(r.CPU)),
		record.Nested("Memory Info", memoryRecord(r.Memory)),
		record.Nested("Disk Info", diskRecord(r.Disk)),
		record.Nested("GPU Info", gpuRecord(r.GPU)),
	)
}

func errorRecord(err error) record.Value {
	return record.Mapping(record.KV("Error", err.Error()))
}

func osRecord(res Result[OS]) record.Value {
	os, err := res.Value()
	if err != nil {
		return errorRecord(err)
	}
	return record.Mapping(
		record.KV("System", os.System),
		record.KV("Node Name", os.NodeName),
		record.KV("Release", os.Release),
		record.KV("Version", os.Version),
		record.KV("Machine", os.Machine),
		record.KV("Processor", os.Processor),
	)
}

func cpuRecord(res Result[CPU]) record.Value {
	c, err := res.Value()
	if err != nil {
		return errorRecord(err)
	}
	return record.Mapping(
		record.KV("Physical cores", count(c.PhysicalCores)),
		record.KV("Total cores", c.LogicalCores),
		record.KV("Max Frequency (MHz)", reading(c.MaxFreqMHz)),
		record.KV("Min Frequency (MHz)", reading(c.MinFreqMHz)),
		record.KV("Current Frequency (MHz)", reading(c.CurFreqMHz)),
		record.Nested("CPU Usage per Core (%)", record.Floats(c.PerCoreUsage)),
		record.KV("Total CPU Usage (%)", c.TotalUsage),
	)
}

func memoryRecord(res Result[Memory]) record.Value {
	m, err := res.Value()
	if err != nil {
		return errorRecord(err)
	}
	return record.Mapping(
		record.KV("Total (GB)", m.TotalGB),
		record.KV("Available (GB)", m.AvailableGB),
		record.KV("Used (GB)", m.UsedGB),
		record.KV("Percentage (%)", m.Percent),
	)
}

func diskRecord(res Result[[]Partition]) record.Value {
	parts, err := res.Value()
	if err != nil {
		return record.Sequence(errorRecord(err))
	}

	items := make([]record.Value, len(parts))
	for i, p := range parts {
		if p.Err != nil {
			items[i] = record.Mapping(
				record.KV("Device", p.Device),
				record.KV("Error", p.Err.Error()),
			)
			continue
		}
		items[i] = record.Mapping(
			record.KV("Device", p.Device),
			record.KV("Mountpoint", p.Mountpoint),
			record.KV("File system type", p.Fstype),
			record.KV("Total Size (GB)", p.TotalGB),
			record.KV("Used (GB)", p.UsedGB),
			record.KV("Free (GB)", p.FreeGB),
			record.KV("Percentage (%)", p.Percent),
		)
	}
	return record.Sequence(items...)
}

func gpuRecord(res Result[GPU]) record.Value {
	g, err := res.Value()
	switch {
	case err != nil:
		return record.Sequence(errorRecord(err))
	case !g.Available:
		return record.Sequence(record.Mapping(record.KV("Info", GPUNotInstalled)))
	case len(g.Devices) == 0:
		return record.Sequence(record.Mapping(record.KV("Info", GPUNoneDetected)))
	}

	items := make([]record.Value, len(g.Devices))
	for i, d := range g.Devices {
		load := d.Load
		if load.Valid {
			load = Known(round(load.Value*100, 1))
		}
		items[i] = record.Mapping(
			record.KV("ID", d.ID),
			record.KV("Name", d.Name),
			record.KV("Driver Version", d.Driver),
			record.KV("Memory Total (MB)", reading(d.MemoryTotalMB)),
			record.KV("Memory Used (MB)", reading(d.MemoryUsedMB)),
			record.KV("Memory Free (MB)", reading(d.MemoryFreeMB)),
			record.KV("Load (%)", reading(load)),
			record.KV("Temperature (°C)", reading(d.TemperatureC)),
		)
	}
	return record.Sequence(items...)
}

func count(c Count) any {
	if !c.Valid {
		return NotAvailable
	}
	return c.Value
}

func reading(r Reading) any {
	if !r.Valid {
		return NotAvailable
	}
	return r.Value
}
