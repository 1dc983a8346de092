package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-tangra/go-tangra-specs/internal/convert"
	"github.com/go-tangra/go-tangra-specs/internal/record"
)

const notAvailable = "N/A"

// Text prints a short summary of the report: a curated subset of fields in a
// fixed order. Missing or non-scalar values print as "N/A", so error and
// placeholder records render without failing. The GPU section is printed only
// when the first GPU record describes a device.
func Text(w io.Writer, v record.Value) error {
	var b bytes.Buffer

	version := "1.0.0"
	if s, ok := scalar(v, "Version"); ok {
		version = s
	}

	fmt.Fprintf(&b, "\nSystem Specs Collector v%s\n", version)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", field(v, "Timestamp"))

	osInfo := group(v, "OS Info")
	b.WriteString("\nOperating System:\n")
	fmt.Fprintf(&b, "  System: %s\n", field(osInfo, "System"))
	fmt.Fprintf(&b, "  Version: %s\n", field(osInfo, "Version"))
	fmt.Fprintf(&b, "  Machine: %s\n", field(osInfo, "Machine"))

	cpuInfo := group(v, "CPU Info")
	b.WriteString("\nCPU Information:\n")
	fmt.Fprintf(&b, "  Physical Cores: %s\n", field(cpuInfo, "Physical cores"))
	fmt.Fprintf(&b, "  Total Cores: %s\n", field(cpuInfo, "Total cores"))
	fmt.Fprintf(&b, "  Current Frequency: %s MHz\n", field(cpuInfo, "Current Frequency (MHz)"))
	fmt.Fprintf(&b, "  Total Usage: %s%%\n", field(cpuInfo, "Total CPU Usage (%)"))

	memInfo := group(v, "Memory Info")
	b.WriteString("\nMemory Information:\n")
	fmt.Fprintf(&b, "  Total: %s GB\n", field(memInfo, "Total (GB)"))
	fmt.Fprintf(&b, "  Used: %s GB (%s%%)\n", field(memInfo, "Used (GB)"), field(memInfo, "Percentage (%)"))

	gpu := firstGPU(v)
	if gpu.Has("Name") || gpu.Has("ID") {
		b.WriteString("\nGPU Information:\n")
		fmt.Fprintf(&b, "  Name: %s\n", field(gpu, "Name"))
		fmt.Fprintf(&b, "  Memory: %s/%s MB\n", field(gpu, "Memory Used (MB)"), field(gpu, "Memory Total (MB)"))
		fmt.Fprintf(&b, "  Load: %s%%\n", field(gpu, "Load (%)"))
	}

	_, err := w.Write(b.Bytes())
	return err
}

// group returns the mapping under key, or an empty mapping.
func group(v record.Value, key string) record.Value {
	g, ok := v.Get(key)
	if !ok || g.Kind() != record.KindMapping {
		return record.Mapping()
	}
	return g
}

func firstGPU(v record.Value) record.Value {
	list, ok := v.Get("GPU Info")
	if !ok {
		return record.Mapping()
	}
	first, ok := list.Index(0)
	if !ok || first.Kind() != record.KindMapping {
		return record.Mapping()
	}
	return first
}

func scalar(v record.Value, key string) (string, bool) {
	f, ok := v.Get(key)
	if !ok || f.Kind() != record.KindScalar || f.Interface() == nil {
		return "", false
	}
	return convert.Text(f.Interface()), true
}

func field(v record.Value, key string) string {
	if s, ok := scalar(v, key); ok {
		return s
	}
	return notAvailable
}
