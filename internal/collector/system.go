package collector

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// Overridden in tests.
var (
	hostInfo          = host.InfoWithContext
	cpuInfo           = cpu.InfoWithContext
	kernelVersion     = unameVersion
	firmwareProcessor = platformProcessor
)

var systemNames = map[string]string{
	"linux":     "Linux",
	"darwin":    "Darwin",
	"windows":   "Windows",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"solaris":   "SunOS",
	"illumos":   "SunOS",
	"aix":       "AIX",
}

// GetOSInfo collects operating system identity. Any failure fails the
// whole group.
func GetOSInfo(ctx context.Context) Result[OS] {
	info, err := hostInfo(ctx)
	if err != nil {
		return Fail[OS](failed("get OS info", err))
	}
	if info == nil {
		return Fail[OS](failed("get OS info", errors.New("no host information returned")))
	}

	version, err := kernelVersion()
	if err != nil {
		return Fail[OS](failed("get OS info", err))
	}

	return OK(OS{
		System:    systemName(runtime.GOOS),
		NodeName:  info.Hostname,
		Release:   info.KernelVersion,
		Version:   version,
		Machine:   info.KernelArch,
		Processor: processorName(ctx),
	})
}

func systemName(goos string) string {
	if name, ok := systemNames[goos]; ok {
		return name
	}
	if goos == "" {
		return NotAvailable
	}
	return strings.ToUpper(goos[:1]) + goos[1:]
}

// processorName prefers the model name the kernel reports and falls back to
// the SMBIOS processor version. It never fails.
func processorName(ctx context.Context) string {
	if infos, err := cpuInfo(ctx); err == nil {
		for _, ci := range infos {
			if name := strings.TrimSpace(ci.ModelName); name != "" {
				return name
			}
		}
	}
	if name := firmwareProcessor(); name != "" {
		return name
	}
	return NotAvailable
}
