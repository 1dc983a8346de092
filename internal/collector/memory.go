package collector

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/mem"
)

var virtualMemory = mem.VirtualMemoryWithContext

// GetMemoryInfo collects virtual memory totals.
func GetMemoryInfo(ctx context.Context) Result[Memory] {
	vm, err := virtualMemory(ctx)
	if err != nil {
		return Fail[Memory](failed("get memory info", err))
	}
	if vm == nil {
		return Fail[Memory](failed("get memory info", errors.New("no memory statistics returned")))
	}

	return OK(Memory{
		TotalGB:     toGB(vm.Total),
		AvailableGB: toGB(vm.Available),
		UsedGB:      toGB(vm.Used),
		Percent:     round(vm.UsedPercent, 1),
	})
}
