// Package quality maps perceptual quality values to codec compression
// parameters.
//
// The 1-100 quality scale is what callers reason about; CRF is what x264 and
// x265 consume. Lower CRF means higher quality and a larger file, so the
// mapping is inverse and linear: quality 100 yields the minimum CRF bound,
// quality 1 (and below) the maximum.
package quality

import "math"

// Mapper converts 1-100 quality values into CRF values within fixed bounds.
type Mapper struct {
	crfMin int
	crfMax int
}

// NewMapper constructs a Mapper with the provided CRF bounds. Inverted or
// equal bounds fall back to the 15..45 defaults.
func NewMapper(crfMin, crfMax int) Mapper {
	if crfMin >= crfMax {
		crfMin, crfMax = 15, 45
	}
	return Mapper{crfMin: crfMin, crfMax: crfMax}
}

// CRF maps a quality value to a compression parameter. Quality is clamped to
// [1,100]; the result always lies in [crfMin, crfMax] and is non-increasing
// as quality increases.
func (m Mapper) CRF(quality int) int {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	spread := float64(m.crfMax - m.crfMin)
	crf := int(math.Round(float64(m.crfMax) - float64(quality)/100*spread))
	if crf < m.crfMin {
		crf = m.crfMin
	}
	if crf > m.crfMax {
		crf = m.crfMax
	}
	return crf
}

// Bounds returns the configured CRF range.
func (m Mapper) Bounds() (int, int) {
	return m.crfMin, m.crfMax
}
