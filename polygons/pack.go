// Package polygons converts variable-length map polylines into
// fixed-size padded tensors using a reflect-and-tile fill.
package polygons

import "fmt"

// Limits fixes the output tensor shape for one polygon channel.
type Limits struct {
	MaxElems  int // element slots
	MaxPoints int // points per element slot
	CoordDim  int // coordinate columns kept per point
}

// Validate rejects shapes that cannot be allocated. Zero MaxElems or
// MaxPoints are legal and produce an empty output.
func (l Limits) Validate() error {
	if l.MaxElems < 0 {
		return fmt.Errorf("polygons: negative MaxElems %d", l.MaxElems)
	}
	if l.MaxPoints < 0 {
		return fmt.Errorf("polygons: negative MaxPoints %d", l.MaxPoints)
	}
	if l.CoordDim <= 0 {
		return fmt.Errorf("polygons: CoordDim must be positive, got %d", l.CoordDim)
	}
	return nil
}

// Raw is one polygon channel as the rasterizer emits it:
// Points[elem][point][coord] with a parallel per-point validity mask.
// Points may carry more coordinate columns than consumers keep.
type Raw struct {
	Points [][][]float64
	Valid  [][]bool
}

// Packed is the dense output. Points has shape
// (MaxElems, MaxPoints, CoordDim); Valid marks the element slots that
// hold real data. Slots beyond the packed count stay all zero.
type Packed struct {
	Points [][][]float64
	Valid  []bool
	Limits Limits
}

func newPacked(lim Limits) *Packed {
	points := make([][][]float64, lim.MaxElems)
	for i := range points {
		points[i] = make([][]float64, lim.MaxPoints)
		for j := range points[i] {
			points[i][j] = make([]float64, lim.CoordDim)
		}
	}
	return &Packed{
		Points: points,
		Valid:  make([]bool, lim.MaxElems),
		Limits: lim,
	}
}

// NumValid returns the number of filled element slots.
func (p *Packed) NumValid() int {
	n := 0
	for _, v := range p.Valid {
		if v {
			n++
		}
	}
	return n
}

// Pack fills a zero tensor with the valid points of each raw element
// followed by alternating reflections of the same sequence until the
// slot is full, so every row of a valid slot holds a real point.
//
// Empty elements do not consume a slot: slot assignment compacts over
// the non-empty raw elements in input order. Non-empty elements beyond
// MaxElems are dropped silently.
func Pack(points [][][]float64, valid [][]bool, lim Limits) (*Packed, error) {
	if err := lim.Validate(); err != nil {
		return nil, err
	}
	if len(points) != len(valid) {
		return nil, fmt.Errorf("polygons: %d point elements but %d validity rows", len(points), len(valid))
	}

	out := newPacked(lim)
	indElem := 0
	for i, elem := range points {
		if len(elem) != len(valid[i]) {
			return nil, fmt.Errorf("polygons: element %d has %d points but %d validity entries", i, len(elem), len(valid[i]))
		}
		seq := make([][]float64, 0, len(elem))
		for j, pt := range elem {
			if !valid[i][j] {
				continue
			}
			if len(pt) < lim.CoordDim {
				return nil, fmt.Errorf("polygons: element %d point %d has %d coords, need %d", i, j, len(pt), lim.CoordDim)
			}
			seq = append(seq, pt[:lim.CoordDim])
		}
		if len(seq) == 0 {
			continue
		}
		if indElem >= lim.MaxElems || lim.MaxPoints == 0 {
			// capacity truncation, keep scanning so shape errors
			// in later elements still surface
			continue
		}
		fillSlot(out.Points[indElem], seq)
		out.Valid[indElem] = true
		indElem++
	}
	return out, nil
}

// PackRaw packs one rasterizer channel.
func PackRaw(raw Raw, lim Limits) (*Packed, error) {
	return Pack(raw.Points, raw.Valid, lim)
}

// fillSlot tiles seq, then its reflection, then seq again into dst,
// each copy truncated to the remaining capacity.
func fillSlot(dst [][]float64, seq [][]float64) {
	flipped := make([][]float64, len(seq))
	for i := range seq {
		flipped[i] = seq[len(seq)-1-i]
	}

	ind := 0
	flip := false
	for ind < len(dst) {
		cur := seq
		if flip {
			cur = flipped
		}
		n := len(seq)
		if rem := len(dst) - ind; n > rem {
			n = rem
		}
		for k := 0; k < n; k++ {
			copy(dst[ind+k], cur[k])
		}
		ind += n
		flip = !flip
	}
}

// Deinterleave splits a channel that interleaves two parallel
// boundaries into its even-indexed and odd-indexed halves.
func Deinterleave(raw Raw) (even, odd Raw) {
	for i := range raw.Points {
		if i%2 == 0 {
			even.Points = append(even.Points, raw.Points[i])
		} else {
			odd.Points = append(odd.Points, raw.Points[i])
		}
	}
	for i := range raw.Valid {
		if i%2 == 0 {
			even.Valid = append(even.Valid, raw.Valid[i])
		} else {
			odd.Valid = append(odd.Valid, raw.Valid[i])
		}
	}
	return even, odd
}
