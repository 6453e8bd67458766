package arc

import "testing"

func TestNew_DropInvokesDestructorOnce(t *testing.T) {
	data := 42
	destroyed := 0
	var lastRefcount int32 = -1

	l := New(&data, nil, func(ctx interface{}, d *int) {
		destroyed++
	})

	rc := Drop(l)
	lastRefcount = rc

	if destroyed != 1 {
		t.Fatalf("expected destructor invoked exactly once, got %d", destroyed)
	}
	if lastRefcount != 1 {
		t.Fatalf("expected Drop to report previous refcount 1, got %d", lastRefcount)
	}
}

func TestDrop_OnNullIsNoOp(t *testing.T) {
	var l Local[int]
	if !l.IsNull() {
		t.Fatalf("zero value Local should be null")
	}
	if rc := Drop(l); rc != 0 {
		t.Fatalf("expected Drop(null) == 0, got %d", rc)
	}
}

func TestCloneDrop_DestroysOnLastDrop(t *testing.T) {
	data := "payload"
	destroyed := 0

	root := New(&data, nil, func(ctx interface{}, d *string) {
		destroyed++
	})
	clone1 := Clone(root)
	clone2 := Clone(clone1)

	Drop(clone2)
	if destroyed != 0 {
		t.Fatalf("destructor fired early after first of three drops")
	}
	Drop(clone1)
	if destroyed != 0 {
		t.Fatalf("destructor fired early after second of three drops")
	}
	Drop(root)
	if destroyed != 1 {
		t.Fatalf("expected destructor exactly once after final drop, got %d", destroyed)
	}
}

func TestIsEqual_IdentityViaControlBlock(t *testing.T) {
	a := 1
	b := 2
	rootA := New(&a, nil, func(ctx interface{}, d *int) {})
	rootB := New(&b, nil, func(ctx interface{}, d *int) {})
	cloneOfA := Clone(rootA)

	if !IsEqual(rootA, cloneOfA) {
		t.Fatalf("expected clone to be identity-equal to its root")
	}
	if IsEqual(rootA, rootB) {
		t.Fatalf("expected distinct roots to not be equal")
	}
	var nullA, nullB Local[int]
	if !IsEqual(nullA, nullB) {
		t.Fatalf("expected two null references to be equal")
	}

	Drop(rootA)
	Drop(cloneOfA)
	Drop(rootB)
}

func TestCell_StoreThenLoad_YieldsIdentityEqualValue(t *testing.T) {
	cell := NewCell[int]()
	data := 7
	v := New(&data, nil, func(ctx interface{}, d *int) {})

	cell.AtomicStore(v)
	loaded := cell.AtomicLoad()
	defer Drop(loaded)

	if !IsEqual(v, loaded) {
		t.Fatalf("expected AtomicLoad after AtomicStore(v) to be identity-equal to v")
	}
	if loaded.Data() != &data {
		t.Fatalf("expected loaded data pointer to match stored value")
	}

	Drop(v)
}

func TestCell_NullStoreDestroysPreviousValue(t *testing.T) {
	cell := NewCell[int]()
	data := 99
	destroyed := 0
	v := New(&data, nil, func(ctx interface{}, d *int) {
		destroyed++
	})

	cell.AtomicStore(v)
	Drop(v) // caller's own reference; the cell still holds one

	if destroyed != 0 {
		t.Fatalf("destructor fired while the cell still held a reference")
	}

	cell.AtomicStore(Local[int]{}) // store null: displaces and destroys the previous value
	if destroyed != 1 {
		t.Fatalf("expected null store to destroy the displaced value exactly once, got %d destructions", destroyed)
	}

	loaded := cell.AtomicLoad()
	if !loaded.IsNull() {
		t.Fatalf("expected cell to be null after storing null")
	}
}

func TestCell_LoadOnEmptyCellIsNull(t *testing.T) {
	cell := NewCell[string]()
	loaded := cell.AtomicLoad()
	if !loaded.IsNull() {
		t.Fatalf("expected load on empty cell to be null")
	}
	if Drop(loaded) != 0 {
		t.Fatalf("expected dropping a null load to be a no-op")
	}
}
