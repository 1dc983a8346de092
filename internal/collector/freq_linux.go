//go:build linux

package collector

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var sysfsCPU = "/sys/devices/system/cpu"

// cpuFrequency reads cpufreq from sysfs. The current frequency is averaged
// over all CPUs; min and max come from the first CPU that reports them.
// Hosts without cpufreq (most VMs) fall back to the model clock.
func cpuFrequency(ctx context.Context) (cur, min, max Reading) {
	dirs, _ := filepath.Glob(filepath.Join(sysfsCPU, "cpu[0-9]*", "cpufreq"))

	var sum float64
	var n int
	for _, dir := range dirs {
		if v, ok := readKHz(filepath.Join(dir, "scaling_cur_freq")); ok {
			sum += v
			n++
		}
		if !min.Valid {
			if v, ok := readKHz(filepath.Join(dir, "cpuinfo_min_freq")); ok {
				min = Known(v)
			}
		}
		if !max.Valid {
			if v, ok := readKHz(filepath.Join(dir, "cpuinfo_max_freq")); ok {
				max = Known(v)
			}
		}
	}
	if n > 0 {
		cur = Known(round(sum/float64(n), 2))
	}

	if !cur.Valid {
		cur = modelFrequency(ctx)
	}
	return cur, min, max
}

// readKHz reads a sysfs kHz value and returns it in MHz.
func readKHz(path string) (float64, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v / 1e3, true
}
