//go:build !linux || !cgo

package collector

// openNVML reports no library; nvidia-smi is the only backend here.
func openNVML() (DeviceQuery, bool) {
	return nil, false
}
