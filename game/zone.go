package game

import "sort"

// Zone is a set of board coordinates, keyed by flat index.
type Zone map[int]struct{}

// ExclusionZone returns the cells an opening placement may not use: the center
// cell and its four neighbors on odd sizes, the central 2x2 block on even sizes.
func ExclusionZone(size int) Zone {
	zone := Zone{}
	add := func(row, col int) {
		if row >= 0 && row < size && col >= 0 && col < size {
			zone[row*size+col] = struct{}{}
		}
	}

	mid := size / 2
	if size%2 == 1 {
		add(mid, mid)
		for _, d := range directions {
			add(mid+d[0], mid+d[1])
		}
	} else {
		add(mid-1, mid-1)
		add(mid-1, mid)
		add(mid, mid-1)
		add(mid, mid)
	}
	return zone
}

func (z Zone) Contains(b *Board, row, col int) bool {
	_, ok := z[b.Index(row, col)]
	return ok
}

// Coords lists the zone's cells as (row, col) pairs in row-major order.
func (z Zone) Coords(size int) [][2]int {
	indices := make([]int, 0, len(z))
	for index := range z {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	coords := make([][2]int, len(indices))
	for i, index := range indices {
		coords[i] = [2]int{index / size, index % size}
	}
	return coords
}
