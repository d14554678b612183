package queue

import "github.com/kgantsov/qlist/pkg/list"

func lessOrEqual(a, b string) bool    { return a <= b }
func greaterOrEqual(a, b string) bool { return a >= b }

// Sort orders the queue ascending by byte-wise string comparison. Equal
// values keep their relative order.
func (q *Queue) Sort() {
	q.sort(lessOrEqual)
}

// SortDescending orders the queue descending. Equal values keep their
// relative order.
func (q *Queue) SortDescending() {
	q.sort(greaterOrEqual)
}

// sort cuts the circle open, merge sorts the forward chain and then rebuilds
// every prev pointer and the sentinel links in one pass.
func (q *Queue) sort(inOrder func(a, b string) bool) {
	if !q.valid() || q.head.Empty() {
		return
	}

	head := &q.head
	head.Prev().SetNext(nil)
	head.SetNext(mergeSort(head.Next(), inOrder))

	prev := head
	for ; prev.Next() != nil; prev = prev.Next() {
		prev.Next().SetPrev(prev)
	}
	prev.SetNext(head)
	head.SetPrev(prev)
}

// mergeSort sorts a nil terminated chain linked through next only.
func mergeSort(first *list.Head[Element], inOrder func(a, b string) bool) *list.Head[Element] {
	if first == nil || first.Next() == nil {
		return first
	}

	slow := first
	for fast := first.Next(); fast != nil && fast.Next() != nil; fast = fast.Next().Next() {
		slow = slow.Next()
	}
	mid := slow.Next()
	slow.SetNext(nil)

	return merge(mergeSort(first, inOrder), mergeSort(mid, inOrder), inOrder)
}

// merge takes from left whenever inOrder holds, which keeps ties stable.
func merge(left, right *list.Head[Element], inOrder func(a, b string) bool) *list.Head[Element] {
	var start list.Head[Element]
	tail := &start

	for left != nil && right != nil {
		if inOrder(entry(left).Value, entry(right).Value) {
			tail.SetNext(left)
			left = left.Next()
		} else {
			tail.SetNext(right)
			right = right.Next()
		}
		tail = tail.Next()
	}

	if left != nil {
		tail.SetNext(left)
	} else {
		tail.SetNext(right)
	}

	return start.Next()
}

// IsSorted reports whether the queue is in ascending, or with descending set
// in descending, order.
func (q *Queue) IsSorted(descending bool) bool {
	if !q.valid() || q.head.Empty() {
		return true
	}

	sorted := true
	var prev *Element
	q.head.Each(func(e *Element) bool {
		if prev != nil {
			if descending && prev.Value < e.Value || !descending && prev.Value > e.Value {
				sorted = false
				return false
			}
		}
		prev = e
		return true
	})

	return sorted
}
