//go:build linux && cgo

package collector

import (
	"context"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const bytesPerMiB = 1 << 20

// Overridden in tests.
var nvmlNew = nvml.New

// NVML queries devices through the NVIDIA management library.
type NVML struct {
	lib nvml.Interface
}

// openNVML loads the library once to check that a driver is present. Each
// query initializes it again and shuts it down when done.
func openNVML() (DeviceQuery, bool) {
	lib := nvmlNew()
	if ret := lib.Init(); ret != nvml.SUCCESS {
		return nil, false
	}
	_ = lib.Shutdown()
	return &NVML{lib: lib}, true
}

func (n *NVML) Devices(ctx context.Context) ([]GPUDevice, error) {
	if ret := n.lib.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("initialize NVML: %s", nvml.ErrorString(ret))
	}
	defer n.lib.Shutdown()

	driver, ret := n.lib.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		driver = NotAvailable
	}

	count, ret := n.lib.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, fmt.Errorf("failed to get device count: %s", nvml.ErrorString(ret))
	}

	devices := make([]GPUDevice, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dev, ret := n.lib.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			return nil, fmt.Errorf("failed to get device handle for index %d: %s", i, nvml.ErrorString(ret))
		}
		devices = append(devices, nvmlDevice(i, driver, dev))
	}
	return devices, nil
}

// nvmlDevice reads one device. Unsupported metrics become invalid readings.
func nvmlDevice(index int, driver string, dev nvml.Device) GPUDevice {
	d := GPUDevice{ID: index, Name: NotAvailable, Driver: driver}

	if name, ret := dev.GetName(); ret == nvml.SUCCESS {
		d.Name = name
	}
	if mem, ret := dev.GetMemoryInfo(); ret == nvml.SUCCESS {
		d.MemoryTotalMB = Known(float64(mem.Total) / bytesPerMiB)
		d.MemoryUsedMB = Known(float64(mem.Used) / bytesPerMiB)
		d.MemoryFreeMB = Known(float64(mem.Free) / bytesPerMiB)
	}
	if util, ret := dev.GetUtilizationRates(); ret == nvml.SUCCESS {
		d.Load = Known(float64(util.Gpu) / 100)
	}
	if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		d.TemperatureC = Known(float64(temp))
	}
	return d
}
