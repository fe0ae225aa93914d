//go:build linux

package main

import "golang.org/x/sys/unix"

// maxRSS returns the peak resident set size in bytes, or 0 if unknown.
// Linux reports ru_maxrss in kilobytes.
func maxRSS() uint64 {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return uint64(ru.Maxrss) * 1024
}
