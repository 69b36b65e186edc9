package march

// item is one entry in the narrow-band priority queue: a vertex index and
// its travel time at push time, ordered by ascending time.
type item struct {
	vertex int
	tt     float64
}

// priorityQueue is a min-heap of *item ordered by tt ascending, the same
// shape as the graph package's nodePQ: a slice of pointers implementing
// container/heap.Interface directly.
type priorityQueue []*item

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].tt < pq[j].tt }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*item)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
