package searcher

import "sort"

// rank orders candidates best first. Forced wins come first, fastest first,
// with a random pick among equally fast ones. Everything else is ordered by
// searched value, then attack potential, then defense potential; remaining
// ties keep enumeration order.
func (s *Searcher) rank(infos []CandidateInfo) []CandidateInfo {
	ranked := make([]CandidateInfo, len(infos))
	copy(ranked, infos)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Value == Win && b.Value == Win {
			return a.PliesToWin < b.PliesToWin
		}
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Attack != b.Attack {
			return a.Attack > b.Attack
		}
		return a.Defense > b.Defense
	})

	if len(ranked) == 0 || ranked[0].Value != Win {
		return ranked
	}

	fastest := 1
	for fastest < len(ranked) && ranked[fastest].Value == Win && ranked[fastest].PliesToWin == ranked[0].PliesToWin {
		fastest++
	}
	if fastest > 1 {
		pick := s.intn(fastest)
		ranked[0], ranked[pick] = ranked[pick], ranked[0]
	}
	return ranked
}
