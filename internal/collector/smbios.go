package collector

import (
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// smbiosProcessor returns the first non-empty processor version string from
// the SMBIOS tables, or "" when they cannot be read (usually a permission
// problem outside of root).
func smbiosProcessor() string {
	s, err := smbios.New()
	if err != nil {
		return ""
	}
	for _, p := range s.ProcessorInformation {
		if v := strings.TrimSpace(p.ProcessorVersion); v != "" {
			return v
		}
	}
	return ""
}
