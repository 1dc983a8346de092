package collector

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultGPUCommand is the telemetry tool looked up on PATH.
const DefaultGPUCommand = "nvidia-smi"

// DeviceQuery lists the GPUs visible to a telemetry backend.
type DeviceQuery interface {
	Devices(ctx context.Context) ([]GPUDevice, error)
}

// GPUCapability is resolved once at startup: either Available with a device
// query, or Unavailable when the host has neither NVML nor a telemetry tool.
type GPUCapability struct {
	query DeviceQuery
}

// Available returns a capability backed by q.
func Available(q DeviceQuery) GPUCapability {
	return GPUCapability{query: q}
}

// Unavailable returns the capability of a host without GPU telemetry.
func Unavailable() GPUCapability {
	return GPUCapability{}
}

// Query returns the device query and whether the capability is available.
func (c GPUCapability) Query() (DeviceQuery, bool) {
	return c.query, c.query != nil
}

// Overridden in tests.
var (
	lookPath  = exec.LookPath
	probeNVML = openNVML
)

// DetectGPU prefers the NVML library when it loads, then falls back to
// looking command up on PATH. Without either the capability is Unavailable.
func DetectGPU(command string) GPUCapability {
	if q, ok := probeNVML(); ok {
		return Available(q)
	}
	if command == "" {
		command = DefaultGPUCommand
	}
	path, err := lookPath(command)
	if err != nil {
		return Unavailable()
	}
	return Available(&NvidiaSMI{Path: path})
}

// GetGPUInfo queries the capability. An unavailable capability is not an
// error; it yields GPU{Available: false}.
func GetGPUInfo(ctx context.Context, capability GPUCapability) Result[GPU] {
	q, ok := capability.Query()
	if !ok {
		return OK(GPU{})
	}

	devices, err := q.Devices(ctx)
	if err != nil {
		return Fail[GPU](failed("get GPU info", err))
	}
	return OK(GPU{Available: true, Devices: devices})
}

// nvidiaQueryFields is the column order requested from nvidia-smi.
var nvidiaQueryFields = []string{
	"index",
	"name",
	"driver_version",
	"memory.total",
	"memory.used",
	"memory.free",
	"utilization.gpu",
	"temperature.gpu",
}

// NvidiaSMI queries devices by running nvidia-smi in CSV mode.
type NvidiaSMI struct {
	Path string
}

func (n *NvidiaSMI) Devices(ctx context.Context) ([]GPUDevice, error) {
	cmd := exec.CommandContext(ctx, n.Path,
		"--query-gpu="+strings.Join(nvidiaQueryFields, ","),
		"--format=csv,noheader,nounits",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", n.Path, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", n.Path, err)
	}
	return parseNvidiaSMI(out)
}

// parseNvidiaSMI parses "--format=csv,noheader,nounits" output. Fields the
// driver reports as "[N/A]" or "[Not Supported]" become invalid readings.
func parseNvidiaSMI(out []byte) ([]GPUDevice, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = len(nvidiaQueryFields)

	var devices []GPUDevice
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse nvidia-smi output: %w", err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("parse nvidia-smi index %q: %w", row[0], err)
		}

		load := parseReading(row[6])
		if load.Valid {
			load.Value /= 100
		}

		devices = append(devices, GPUDevice{
			ID:            id,
			Name:          strings.TrimSpace(row[1]),
			Driver:        strings.TrimSpace(row[2]),
			MemoryTotalMB: parseReading(row[3]),
			MemoryUsedMB:  parseReading(row[4]),
			MemoryFreeMB:  parseReading(row[5]),
			Load:          load,
			TemperatureC:  parseReading(row[7]),
		})
	}
	return devices, nil
}

func parseReading(s string) Reading {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Reading{}
	}
	return Known(v)
}
