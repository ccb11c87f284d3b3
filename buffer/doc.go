// Package buffer provides the byte cursor the codec reads from and writes to.
//
// All multi-byte integers are big-endian (network byte order). Writer grows as
// needed; Reader never reads past the end of its slice and reports a shortfall
// as an underrun error so callers can wait for more data and retry.
package buffer
