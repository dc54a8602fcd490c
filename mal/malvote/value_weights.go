package malvote

// ValuesWeights accumulates voting power per observed vote target.
type ValuesWeights[V comparable] struct {
	m map[V]uint64
}

func NewValuesWeights[V comparable]() ValuesWeights[V] {
	return ValuesWeights[V]{m: make(map[V]uint64)}
}

// Add adds weight to the tally for v and returns v's updated weight.
func (vw ValuesWeights[V]) Add(v V, weight uint64) uint64 {
	vw.m[v] += weight
	return vw.m[v]
}

// Get returns the accumulated weight for v.
func (vw ValuesWeights[V]) Get(v V) uint64 {
	return vw.m[v]
}

// Sum returns the total weight across all targets.
func (vw ValuesWeights[V]) Sum() uint64 {
	var sum uint64
	for _, w := range vw.m {
		sum += w
	}
	return sum
}
