package engine

import "container/heap"

// frontierItem is a cell waiting to be expanded
type frontierItem struct {
	cell  Cell
	cost  int
	seq   int // insertion order, breaks cost ties
	index int
}

// frontierQueue orders cells by cost, then by insertion order
type frontierQueue []*frontierItem

func (q frontierQueue) Len() int { return len(q) }
func (q frontierQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q frontierQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontierQueue) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// frontier is the open set: a heap plus a membership index
type frontier struct {
	queue   frontierQueue
	members map[Cell]*frontierItem
	nextSeq int
}

func newFrontier() *frontier {
	return &frontier{members: make(map[Cell]*frontierItem)}
}

func (f *frontier) Len() int { return f.queue.Len() }

// Upsert inserts the cell or lowers its cost if already present
func (f *frontier) Upsert(cell Cell, cost int) {
	if item, ok := f.members[cell]; ok {
		if cost < item.cost {
			item.cost = cost
			heap.Fix(&f.queue, item.index)
		}
		return
	}
	item := &frontierItem{cell: cell, cost: cost, seq: f.nextSeq}
	f.nextSeq++
	heap.Push(&f.queue, item)
	f.members[cell] = item
}

// PopMin removes and returns the cheapest cell
func (f *frontier) PopMin() (Cell, int) {
	item := heap.Pop(&f.queue).(*frontierItem)
	delete(f.members, item.cell)
	return item.cell, item.cost
}
