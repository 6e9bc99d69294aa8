package game

// CascadeResult summarises one call to ResolveExplosions.
type CascadeResult struct {
	Explosions int  `json:"explosions"` // Cells that exploded, summed over all waves
	Waves      int  `json:"waves"`      // Waves that contained at least one explosion
	Runaway    bool `json:"runaway"`    // The wave bound was exceeded before the board settled
}

// MaxWaves bounds the waves a cascade may take on a board of the given size.
func MaxWaves(size int) int {
	return 3 * size
}

// ResolveExplosions explodes every cell at or above the threshold, wave by
// wave, until the board is stable. Each exploding cell is cleared and sends
// value-threshold+1 charge to each in-bounds orthogonal neighbor, claiming it.
// During initial placement every out-of-bounds direction bounces one unit back
// into the origin; in the main phase those fragments are lost.
//
// A wave fires from the values and owners the board held when it started:
// every origin is cleared first, then fragments are scattered in row-major
// order, so a charge landing on another origin of the same wave is kept.
//
// If the board is still unstable after MaxWaves waves, the partial state is
// kept and Runaway is reported.
func ResolveExplosions(b *Board, rules Rules, initial bool) CascadeResult {
	var result CascadeResult
	limit := MaxWaves(b.Size)

	for {
		wave := b.unstable(rules.Threshold)
		if len(wave) == 0 {
			return result
		}
		if result.Waves == limit {
			result.Runaway = true
			return result
		}
		result.Waves++

		for _, bu := range wave {
			b.Cells[bu.index] = Cell{Value: 0, Owner: NoOwner}
		}
		for _, bu := range wave {
			b.scatter(bu, rules, initial)
			result.Explosions++
		}
	}
}

// burst is a cell captured at the start of a wave.
type burst struct {
	index int
	value int
	owner int
}

// unstable records the cells at or above the threshold, row-major.
func (b *Board) unstable(threshold int) []burst {
	var wave []burst
	for i, cell := range b.Cells {
		if cell.Value >= threshold {
			wave = append(wave, burst{index: i, value: cell.Value, owner: cell.Owner})
		}
	}
	return wave
}

func (b *Board) scatter(bu burst, rules Rules, initial bool) {
	fragment := rules.Fragment(bu.value)
	row, col := b.Coords(bu.index)
	bounced := 0
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if !b.InBounds(r, c) {
			if initial {
				bounced++
			}
			continue
		}
		n := b.Index(r, c)
		b.Cells[n] = Cell{
			Value: min(b.Cells[n].Value+fragment, rules.MaxValue),
			Owner: bu.owner,
		}
	}

	if bounced > 0 {
		b.Cells[bu.index] = Cell{
			Value: min(b.Cells[bu.index].Value+bounced, rules.MaxValue),
			Owner: bu.owner,
		}
	}
}
