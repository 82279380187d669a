package mathx

// MapU16 maps x in [inMin,inMax] to [outMin,outMax] with 32-bit intermediates.
// Clamps to out range if input is outside. outMax may be below outMin, in
// which case the mapping is descending.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax == inMin {
		return outMin
	}
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	den := uint32(inMax - inMin)
	if outMax < outMin {
		num := uint32(x-inMin) * uint32(outMin-outMax)
		return uint16(uint32(outMin) - num/den)
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	return uint16(uint32(outMin) + num/den)
}
