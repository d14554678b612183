package list

// Head is a link of a circular doubly-linked list. It is embedded in the
// record it links, and entry points back at that record so a node found by
// walking the chain can be turned into its owner without address arithmetic.
//
// A list is addressed by a sentinel Head that has no entry. An empty list is a
// sentinel whose next and prev point at itself.
type Head[T any] struct {
	next  *Head[T]
	prev  *Head[T]
	entry *T
}

// New returns an initialised sentinel.
func New[T any]() *Head[T] {
	h := new(Head[T])
	h.Init()

	return h
}

// Init makes h an empty list.
func (h *Head[T]) Init() {
	h.next = h
	h.prev = h
}

// Bind attaches the record owning h. The node stays unlinked.
func (h *Head[T]) Bind(entry *T) {
	h.entry = entry
}

func insert[T any](node, prev, next *Head[T]) {
	next.prev = node
	node.next = next
	node.prev = prev
	prev.next = node
}

// Add links node right after h.
func (h *Head[T]) Add(node *Head[T]) {
	insert(node, h, h.next)
}

// AddTail links node right before h, which for a sentinel is the tail.
func (h *Head[T]) AddTail(node *Head[T]) {
	insert(node, h.prev, h)
}

// Del splices h out of its chain. Its own pointers are cleared.
func (h *Head[T]) Del() {
	h.prev.next = h.next
	h.next.prev = h.prev

	h.next = nil
	h.prev = nil
}

func (h *Head[T]) Empty() bool {
	return h.next == h
}

// Singular reports whether the list headed by h has exactly one member.
func (h *Head[T]) Singular() bool {
	return !h.Empty() && h.next == h.prev
}

// Linked reports whether h currently belongs to a chain.
func (h *Head[T]) Linked() bool {
	return h.next != nil
}

func (h *Head[T]) Next() *Head[T] {
	return h.next
}

func (h *Head[T]) Prev() *Head[T] {
	return h.prev
}

// Entry returns the record embedding h, nil for a sentinel.
func (h *Head[T]) Entry() *T {
	return h.entry
}

// SetNext and SetPrev rewrite a single pointer. They do not keep the chain
// consistent; callers doing pointer surgery restore it themselves.
func (h *Head[T]) SetNext(next *Head[T]) {
	h.next = next
}

func (h *Head[T]) SetPrev(prev *Head[T]) {
	h.prev = prev
}

// Each calls fn for every entry from the front until fn returns false.
// fn must not unlink the node it is given.
func (h *Head[T]) Each(fn func(entry *T) bool) {
	for node := h.next; node != h; node = node.next {
		if !fn(node.entry) {
			return
		}
	}
}

// Len counts the members by walking the whole chain.
func (h *Head[T]) Len() int {
	n := 0
	for node := h.next; node != h; node = node.next {
		n++
	}

	return n
}
