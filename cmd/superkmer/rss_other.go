//go:build !linux

package main

// maxRSS returns 0 on platforms where peak RSS is not queried.
func maxRSS() uint64 { return 0 }
