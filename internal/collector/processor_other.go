//go:build !windows

package collector

func platformProcessor() string {
	return smbiosProcessor()
}
