package arena

// Fixed-capacity slab for one frame's worth of values.
// Initialize once with New(capacity). Reset() every frame.
// The backing slice never grows, so pointers handed out by Alloc stay valid
// until the next Reset.

// Handle addresses a slot inside an Arena. Handles are only meaningful for the
// frame they were allocated in.
type Handle int32

// Nil is the handle of "no value".
const Nil Handle = -1

func (h Handle) Valid() bool { return h >= 0 }

type Arena[T any] struct {
	slots []T
}

// New creates an arena holding at most capacity values.
// Example: arena.New[ui.Element](256)
func New[T any](capacity int) *Arena[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Arena[T]{slots: make([]T, 0, capacity)}
}

// Reset discards every allocation. Slot memory is reused, not freed.
func (a *Arena[T]) Reset() { a.slots = a.slots[:0] }

// Cap returns the fixed capacity.
func (a *Arena[T]) Cap() int { return cap(a.slots) }

// Len returns the number of live allocations.
func (a *Arena[T]) Len() int { return len(a.slots) }

// Remaining returns how many more values fit before Alloc fails.
func (a *Arena[T]) Remaining() int { return cap(a.slots) - len(a.slots) }

// Alloc returns a zeroed slot. ok is false when the arena is full; the caller
// decides whether to drop the value or abort.
func (a *Arena[T]) Alloc() (h Handle, v *T, ok bool) {
	if len(a.slots) == cap(a.slots) {
		return Nil, nil, false
	}
	var zero T
	a.slots = append(a.slots, zero)
	h = Handle(len(a.slots) - 1)
	return h, &a.slots[h], true
}

// Get returns the value behind h, or nil when h was not allocated this frame.
func (a *Arena[T]) Get(h Handle) *T {
	if h < 0 || int(h) >= len(a.slots) {
		return nil
	}
	return &a.slots[h]
}

// All iterates live values in allocation order.
func (a *Arena[T]) All(f func(h Handle, v *T) bool) {
	for i := range a.slots {
		if !f(Handle(i), &a.slots[i]) {
			return
		}
	}
}
