package queue

// DeleteMid removes the element at index n/2 (0-based), so of six elements
// the fourth goes. It reports false for an empty or missing queue.
func (q *Queue) DeleteMid() bool {
	if !q.valid() || q.head.Empty() {
		return false
	}

	head := &q.head
	slow := head.Next()
	for fast := head.Next(); fast != head && fast.Next() != head; fast = fast.Next().Next() {
		slow = slow.Next()
	}

	drop(slow)
	return true
}

// DeleteDup removes every value that occurs more than once, keeping none of
// its copies. The queue must already be sorted in ascending order.
func (q *Queue) DeleteDup() bool {
	if !q.valid() {
		return false
	}
	if q.head.Empty() {
		return true
	}

	head := &q.head
	candidate := head.Next()
	dup := false

	for next := candidate.Next(); next != head; next = candidate.Next() {
		if entry(candidate).Value == entry(next).Value {
			drop(next)
			dup = true
			continue
		}

		if dup {
			drop(candidate)
			dup = false
		}
		candidate = next
	}

	if dup {
		drop(candidate)
	}

	return true
}

// Swap exchanges every two adjacent elements. An odd last element stays.
func (q *Queue) Swap() {
	if !q.valid() || q.head.Empty() {
		return
	}

	head := &q.head
	for prev := head; prev.Next() != head && prev.Next().Next() != head; {
		first := prev.Next()
		second := first.Next()
		rest := second.Next()

		prev.SetNext(second)
		second.SetPrev(prev)
		second.SetNext(first)
		first.SetPrev(second)
		first.SetNext(rest)
		rest.SetPrev(first)

		prev = first
	}
}

// Reverse flips the queue in place by exchanging next and prev of every
// node, the sentinel included.
func (q *Queue) Reverse() {
	if !q.valid() || q.head.Empty() {
		return
	}

	head := &q.head
	node := head
	for {
		next := node.Next()
		node.SetNext(node.Prev())
		node.SetPrev(next)

		node = next
		if node == head {
			return
		}
	}
}

// ReverseK reverses the queue in groups of k. A trailing group shorter than
// k keeps its order.
func (q *Queue) ReverseK(k int) {
	if !q.valid() || q.head.Empty() || k <= 1 {
		return
	}

	head := &q.head
	anchor := head
	for {
		end := anchor
		for i := 0; i < k; i++ {
			end = end.Next()
			if end == head {
				return
			}
		}

		first := anchor.Next()
		for i := 1; i < k; i++ {
			node := first.Next()
			node.Del()
			anchor.Add(node)
		}

		anchor = first
	}
}

// Descend removes every element that has a strictly greater one anywhere to
// its right and returns the resulting size.
func (q *Queue) Descend() int {
	return q.prune(func(value, best string) bool { return value < best })
}

// Ascend removes every element that has a strictly smaller one anywhere to
// its right and returns the resulting size.
func (q *Queue) Ascend() int {
	return q.prune(func(value, best string) bool { return value > best })
}

// prune walks from the tail towards the head, keeping the best value seen so
// far and dropping every element beaten by it.
func (q *Queue) prune(beaten func(value, best string) bool) int {
	if !q.valid() || q.head.Empty() {
		return 0
	}

	head := &q.head
	tail := head.Prev()
	best := entry(tail).Value
	size := 1

	for node := tail.Prev(); node != head; {
		prev := node.Prev()
		if value := entry(node).Value; beaten(value, best) {
			drop(node)
		} else {
			best = value
			size++
		}
		node = prev
	}

	return size
}
