//go:build windows

package collector

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// unameVersion returns "major.minor.build", e.g. "10.0.19045".
func unameVersion() (string, error) {
	v := windows.RtlGetVersion()
	if v == nil {
		return "", errors.New("RtlGetVersion returned no data")
	}
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}
