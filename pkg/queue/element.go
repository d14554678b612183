package queue

import (
	"unsafe"

	"github.com/kgantsov/qlist/pkg/alloc"
	"github.com/kgantsov/qlist/pkg/errors"
	"github.com/kgantsov/qlist/pkg/list"
)

const elementSize = int(unsafe.Sizeof(Element{}))

// Element is a queue member owning its string. It is created by an insertion
// and stays owned by the queue until a remove hands it to the caller, who
// must Release it.
type Element struct {
	link  list.Head[Element]
	Value string

	size  int
	alloc alloc.Allocator
}

// Release gives the element's blocks back to the allocator. The element must
// have been removed from its queue first.
func (e *Element) Release() error {
	if e == nil {
		return nil
	}
	if e.alloc == nil {
		return errors.ErrElementReleased
	}
	if e.link.Linked() {
		return errors.ErrElementLinked
	}

	e.release()
	return nil
}

func (e *Element) release() {
	e.alloc.Free(alloc.KindString, e.size)
	e.alloc.Free(alloc.KindElement, elementSize)
	e.alloc = nil
}

func entry(node *list.Head[Element]) *Element {
	return node.Entry()
}

// drop unlinks node and releases its element.
func drop(node *list.Head[Element]) {
	e := node.Entry()
	node.Del()
	e.release()
}
