//go:build unix

package collector

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// unameVersion returns the kernel build string, e.g.
// "#1 SMP PREEMPT_DYNAMIC Fri Mar 29 12:21:27 UTC 2024".
func unameVersion() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return unix.ByteSliceToString(u.Version[:]), nil
}
