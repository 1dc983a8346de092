//go:build windows

package collector

import (
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32Processor struct {
	Name string
}

// platformProcessor asks WMI for the processor name before falling back to
// the SMBIOS tables.
func platformProcessor() string {
	var procs []win32Processor
	if err := wmi.Query("SELECT Name FROM Win32_Processor", &procs); err == nil {
		for _, p := range procs {
			if name := strings.TrimSpace(p.Name); name != "" {
				return name
			}
		}
	}
	return smbiosProcessor()
}
