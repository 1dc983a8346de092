package collector

import (
	"context"
	"math"
)

// NotAvailable marks a fact the platform does not expose.
const NotAvailable = "N/A"

const bytesPerGB = 1 << 30

// round rounds x half away from zero to the given number of decimals.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// toGB converts bytes to binary gigabytes rounded to two decimals.
func toGB(b uint64) float64 {
	return round(float64(b)/bytesPerGB, 2)
}

// modelFrequency returns the clock gopsutil reports for the first CPU.
func modelFrequency(ctx context.Context) Reading {
	infos, err := cpuInfo(ctx)
	if err != nil {
		return Reading{}
	}
	for _, ci := range infos {
		if ci.Mhz > 0 {
			return Known(ci.Mhz)
		}
	}
	return Reading{}
}
