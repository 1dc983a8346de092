//go:build !unix && !windows

package collector

func unameVersion() (string, error) {
	return NotAvailable, nil
}
