package queue

import (
	"strings"
	"unsafe"

	"github.com/rs/zerolog/log"

	"github.com/kgantsov/qlist/pkg/alloc"
	"github.com/kgantsov/qlist/pkg/list"
)

const queueSize = int(unsafe.Sizeof(Queue{}))

// Queue is a sentinel-headed circular list of string elements. A nil or freed
// queue behaves as a missing one: queries return zero values and mutations
// report failure. It is not safe for concurrent use.
type Queue struct {
	head  list.Head[Element]
	alloc alloc.Allocator
}

type Option func(*Queue)

func WithAllocator(a alloc.Allocator) Option {
	return func(q *Queue) {
		q.alloc = a
	}
}

func New(opts ...Option) (*Queue, error) {
	q := &Queue{alloc: alloc.Heap}

	for _, opt := range opts {
		opt(q)
	}
	if q.alloc == nil {
		q.alloc = alloc.Heap
	}

	if err := q.alloc.Alloc(alloc.KindQueue, queueSize); err != nil {
		return nil, err
	}

	q.head.Init()
	return q, nil
}

func (q *Queue) valid() bool {
	return q != nil && q.alloc != nil
}

// Free releases every element and then the queue itself. The queue must not
// be used afterwards except for further no-op calls.
func (q *Queue) Free() {
	if !q.valid() {
		return
	}

	for !q.head.Empty() {
		drop(q.head.Next())
	}

	q.alloc.Free(alloc.KindQueue, queueSize)
	q.alloc = nil
}

func (q *Queue) newElement(s string) *Element {
	if err := q.alloc.Alloc(alloc.KindElement, elementSize); err != nil {
		log.Debug().Err(err).Msg("Failed to allocate element")
		return nil
	}

	size := len(s) + 1
	if err := q.alloc.Alloc(alloc.KindString, size); err != nil {
		q.alloc.Free(alloc.KindElement, elementSize)
		log.Debug().Err(err).Msg("Failed to allocate element value")
		return nil
	}

	e := &Element{Value: strings.Clone(s), size: size, alloc: q.alloc}
	e.link.Bind(e)

	return e
}

// InsertHead puts a copy of s at the front of the queue.
func (q *Queue) InsertHead(s string) bool {
	if !q.valid() {
		return false
	}

	e := q.newElement(s)
	if e == nil {
		return false
	}

	q.head.Add(&e.link)
	return true
}

// InsertTail puts a copy of s at the back of the queue.
func (q *Queue) InsertTail(s string) bool {
	if !q.valid() {
		return false
	}

	e := q.newElement(s)
	if e == nil {
		return false
	}

	q.head.AddTail(&e.link)
	return true
}

// RemoveHead unlinks the first element and hands it to the caller, nil when
// the queue is empty. If buf is not empty the value is copied into it as a
// zero terminated string, silently truncated to len(buf)-1 bytes.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}

	return remove(q.head.Next(), buf)
}

// RemoveTail is RemoveHead for the last element.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}

	return remove(q.head.Prev(), buf)
}

func remove(node *list.Head[Element], buf []byte) *Element {
	e := entry(node)
	node.Del()

	if len(buf) > 0 {
		n := copy(buf[:len(buf)-1], e.Value)
		buf[n] = 0
	}

	return e
}

// Size walks the queue and counts its elements.
func (q *Queue) Size() int {
	if !q.valid() {
		return 0
	}

	return q.head.Len()
}

// Head returns the first element without unlinking it.
func (q *Queue) Head() *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}

	return entry(q.head.Next())
}

// Tail returns the last element without unlinking it.
func (q *Queue) Tail() *Element {
	if !q.valid() || q.head.Empty() {
		return nil
	}

	return entry(q.head.Prev())
}

func (q *Queue) Values() []string {
	values := []string{}
	if !q.valid() {
		return values
	}

	q.head.Each(func(e *Element) bool {
		values = append(values, e.Value)
		return true
	})

	return values
}
