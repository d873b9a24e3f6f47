//go:build debug

package malloc

const poisonbyte = byte(0xdd)

// releaseblock poison the block, irrespective of zeroblocks setting.
func releaseblock(block []byte, zero bool) {
	for i := range block {
		block[i] = poisonbyte
	}
}
