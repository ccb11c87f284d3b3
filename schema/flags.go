package schema

// FlagPosition returns the flags-word bit owned by field index i in a packed
// structure whose flags word is packWidth bytes wide.
func FlagPosition(packWidth, i int) uint {
	return uint(packWidth*8 - 8 - (i/8)*8 + i%8)
}

// FlagMask returns the flags-word mask of field index i.
func FlagMask(packWidth, i int) uint64 {
	return 1 << FlagPosition(packWidth, i)
}

func validPack(pack int) bool {
	switch pack {
	case 0, 1, 2, 4, 8:
		return true
	default:
		return false
	}
}
