package numerology

import "sort"

// Relation classifies a counterpart vibration against one of the user's numbers.
type Relation string

const (
	RelationExact       Relation = "exact"
	RelationFavorable   Relation = "favorable"
	RelationUnfavorable Relation = "unfavorable"
	RelationNeutral     Relation = "neutral"
)

type harmony struct {
	favorable   map[int]struct{}
	unfavorable map[int]struct{}
}

// harmonyTable is static domain data. It is built once at init and never written again.
var harmonyTable = buildHarmonyTable(map[int][2][]int{
	1:  {{2, 3, 5, 9}, {6}},
	2:  {{2, 4, 6, 7}, {5, 9}},
	3:  {{1, 5, 6, 9}, {4, 8}},
	4:  {{1, 6, 7, 8}, {3, 5, 9}},
	5:  {{1, 3, 7, 9}, {2, 4, 6}},
	6:  {{2, 3, 4, 9}, {1, 5, 8}},
	7:  {{2, 4, 5, 7}, {6, 8, 9}},
	8:  {{4, 6, 8, 22}, {1, 3, 7}},
	9:  {{1, 3, 5, 6}, {4, 7, 8}},
	11: {{2, 4, 6, 22}, {1, 5, 8}},
	22: {{4, 6, 8, 11}, {3, 5, 9}},
})

func buildHarmonyTable(raw map[int][2][]int) map[int]harmony {
	table := make(map[int]harmony, len(raw))
	for key, sets := range raw {
		h := harmony{
			favorable:   make(map[int]struct{}, len(sets[0])),
			unfavorable: make(map[int]struct{}, len(sets[1])),
		}
		for _, v := range sets[0] {
			h.favorable[v] = struct{}{}
		}
		for _, v := range sets[1] {
			h.unfavorable[v] = struct{}{}
		}
		table[key] = h
	}
	return table
}

// lookupHarmony finds the entry for value, falling back to its reduced form when the
// caller passed a non-canonical number.
func lookupHarmony(value int) (harmony, bool) {
	if h, ok := harmonyTable[value]; ok {
		return h, true
	}
	h, ok := harmonyTable[Reduce(value)]
	return h, ok
}

// Classify returns how candidate relates to the user's number according to the harmony
// table. Exact matches win over set membership.
func Classify(candidate, userValue int) Relation {
	if candidate == userValue {
		return RelationExact
	}
	h, ok := lookupHarmony(userValue)
	if !ok {
		return RelationNeutral
	}
	if _, fav := h.favorable[candidate]; fav {
		return RelationFavorable
	}
	if _, unfav := h.unfavorable[candidate]; unfav {
		return RelationUnfavorable
	}
	return RelationNeutral
}

// Favorable returns a sorted copy of the favorable set for value.
func Favorable(value int) []int {
	h, ok := lookupHarmony(value)
	if !ok {
		return nil
	}
	return sortedKeys(h.favorable)
}

// Unfavorable returns a sorted copy of the unfavorable set for value.
func Unfavorable(value int) []int {
	h, ok := lookupHarmony(value)
	if !ok {
		return nil
	}
	return sortedKeys(h.unfavorable)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
