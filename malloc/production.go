//go:build !debug

package malloc

func releaseblock(block []byte, zero bool) {
	if zero {
		clear(block)
	}
}
