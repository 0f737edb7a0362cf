package arena

import "testing"

type node struct {
	parent Handle
	value  int
}

func TestAllocUntilFull(t *testing.T) {
	a := New[node](3)
	for i := 0; i < 3; i++ {
		h, n, ok := a.Alloc()
		if !ok {
			t.Fatalf("alloc %d failed with %d remaining", i, a.Remaining())
		}
		if int(h) != i {
			t.Errorf("handle = %d, want %d", h, i)
		}
		n.value = i * 10
	}
	h, n, ok := a.Alloc()
	if ok || n != nil || h != Nil {
		t.Errorf("alloc on full arena = (%d, %v, %v), want (Nil, nil, false)", h, n, ok)
	}
	if got := a.Get(2).value; got != 20 {
		t.Errorf("Get(2).value = %d, want 20", got)
	}
}

func TestResetZeroesReusedSlots(t *testing.T) {
	a := New[node](2)
	_, n, _ := a.Alloc()
	n.value = 7
	n.parent = 1

	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", a.Len())
	}
	if a.Get(0) != nil {
		t.Errorf("Get(0) after Reset should be nil")
	}
	_, n, ok := a.Alloc()
	if !ok {
		t.Fatal("alloc after Reset failed")
	}
	if n.value != 0 || n.parent != 0 {
		t.Errorf("reused slot not zeroed: %+v", *n)
	}
}

func TestPointersStableUntilReset(t *testing.T) {
	a := New[node](16)
	_, first, _ := a.Alloc()
	first.value = 42
	for i := 0; i < 15; i++ {
		a.Alloc()
	}
	if first != a.Get(0) || first.value != 42 {
		t.Errorf("pointer to first slot moved after filling the arena")
	}
}

func TestGetInvalidHandles(t *testing.T) {
	a := New[node](4)
	a.Alloc()
	for _, h := range []Handle{Nil, 1, 4, 100} {
		if a.Get(h) != nil {
			t.Errorf("Get(%d) = non-nil, want nil", h)
		}
	}
}

func TestAllStopsEarly(t *testing.T) {
	a := New[node](4)
	for i := 0; i < 4; i++ {
		_, n, _ := a.Alloc()
		n.value = i
	}
	var seen []int
	a.All(func(h Handle, n *node) bool {
		seen = append(seen, n.value)
		return n.value < 1
	})
	if len(seen) != 2 {
		t.Errorf("All visited %v, want to stop after 2", seen)
	}
}
