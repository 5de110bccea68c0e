package scheduler

import "container/heap"

// waitingHeap implements container/heap.Interface for WaitingEntry,
// ordered by (Severity, Sequence) ascending.
type waitingHeap []WaitingEntry

func (h waitingHeap) Len() int           { return len(h) }
func (h waitingHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h waitingHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *waitingHeap) Push(x any) {
	*h = append(*h, x.(WaitingEntry))
}

func (h *waitingHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = WaitingEntry{}
	*h = old[:n-1]
	return x
}

// heapPush adds e to the heap, maintaining the heap invariant.
func heapPush(h *waitingHeap, e WaitingEntry) {
	heap.Push(h, e)
}

// heapPop removes and returns the entry with the smallest key.
// Panics if the heap is empty.
func heapPop(h *waitingHeap) WaitingEntry {
	return heap.Pop(h).(WaitingEntry)
}

// sortedCopy returns the heap contents in service order without
// touching the heap or its backing array.
func (h waitingHeap) sortedCopy() []WaitingEntry {
	scratch := make(waitingHeap, len(h))
	copy(scratch, h)
	out := make([]WaitingEntry, 0, len(h))
	for scratch.Len() > 0 {
		out = append(out, heapPop(&scratch))
	}
	return out
}
