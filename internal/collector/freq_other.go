//go:build !linux

package collector

import "context"

// cpuFrequency reports the model clock as both current and max; the minimum
// is not exposed outside of Linux.
func cpuFrequency(ctx context.Context) (cur, min, max Reading) {
	mhz := modelFrequency(ctx)
	return mhz, Reading{}, mhz
}
