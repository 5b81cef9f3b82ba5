package scrolling

import (
	"slices"
	"testing"

	"github.com/NicholasChin28/osu/internal/timing"
)

func ids(ds []*Drawable) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.HitObject.ID
	}
	return out
}

func TestCompareLaterStartFirst(t *testing.T) {
	c := newTestContainer(0)
	early := NewDrawable(timing.Instant("early", 100, 10, 10))
	late := NewDrawable(timing.Instant("late", 200, 10, 10))
	mustAdd(t, c, early)
	mustAdd(t, c, late)

	if Compare(late, early) >= 0 {
		t.Errorf("Expected later object first")
	}
	if Compare(early, late) <= 0 {
		t.Errorf("Expected earlier object second")
	}

	got := ids(c.Children())
	if !slices.Equal(got, []string{"late", "early"}) {
		t.Errorf("Unexpected draw order %v", got)
	}
	hit := ids(c.HitTestOrder())
	if !slices.Equal(hit, []string{"early", "late"}) {
		t.Errorf("Unexpected hit test order %v", hit)
	}
}

func TestCompareSimultaneousIsStable(t *testing.T) {
	// Two instants at the same time, tie broken by insertion order
	c := newTestContainer(0)
	a := NewDrawable(timing.Instant("a", 400, 10, 10))
	b := NewDrawable(timing.Instant("b", 400, 10, 10))
	mustAdd(t, c, a)
	mustAdd(t, c, b)

	first := Compare(a, b)
	if first == 0 {
		t.Fatalf("Distinct drawables must not compare equal")
	}
	for i := 0; i < 100; i++ {
		if Compare(a, b) != first || Compare(b, a) != -first {
			t.Fatalf("Comparison changed between calls")
		}
	}

	// Inverse of insertion order: the later insertion comes first
	if first <= 0 {
		t.Errorf("Expected b (inserted later) before a, got %d", first)
	}

	sorted := []*Drawable{a, b}
	slices.SortFunc(sorted, Compare)
	if !slices.Equal(ids(sorted), ids(c.Children())) {
		t.Errorf("Sorted %v disagrees with container order %v", ids(sorted), ids(c.Children()))
	}
}

func TestCompareDepthTieBreak(t *testing.T) {
	c := newTestContainer(0)
	back := NewDrawable(timing.Instant("back", 400, 10, 10))
	back.SetDepth(1)
	front := NewDrawable(timing.Instant("front", 400, 10, 10))
	mustAdd(t, c, front)
	mustAdd(t, c, back)

	// Structural order puts higher depth first; inverted, lower depth comes first
	if Compare(front, back) >= 0 {
		t.Errorf("Expected lower depth first on equal start time")
	}
}

func TestCompareTotalOrder(t *testing.T) {
	c := newTestContainer(0)
	var all []*Drawable
	for _, o := range []timing.HitObject{
		timing.Instant("s1", 300, 1, 1),
		timing.Instant("s2", 300, 1, 1),
		timing.Instant("s3", 300, 1, 1),
		timing.Instant("s4", 300, 1, 1),
		timing.Instant("x", 100, 1, 1),
		timing.Hold("y", 700, 900, 1, 1),
	} {
		d := NewDrawable(o)
		mustAdd(t, c, d)
		all = append(all, d)
	}
	all[2].SetDepth(-1)

	for _, x := range all {
		if Compare(x, x) != 0 {
			t.Errorf("%s compared to itself should be 0", x.HitObject.ID)
		}
		for _, y := range all {
			if x == y {
				continue
			}
			xy, yx := Compare(x, y), Compare(y, x)
			if xy == 0 || xy != -yx {
				t.Errorf("Compare(%s,%s)=%d, Compare(%s,%s)=%d", x.HitObject.ID, y.HitObject.ID, xy, y.HitObject.ID, x.HitObject.ID, yx)
			}
			for _, z := range all {
				if z == x || z == y {
					continue
				}
				if xy < 0 && Compare(y, z) < 0 && Compare(x, z) >= 0 {
					t.Errorf("Cycle: %s < %s < %s but not %s < %s", x.HitObject.ID, y.HitObject.ID, z.HitObject.ID, x.HitObject.ID, z.HitObject.ID)
				}
			}
		}
	}
}

func TestContainerOrderIndependentOfInsertion(t *testing.T) {
	objs := []timing.HitObject{
		timing.Instant("a", 100, 1, 1),
		timing.Instant("b", 500, 1, 1),
		timing.Instant("c", 300, 1, 1),
		timing.Instant("d", 900, 1, 1),
	}

	forward := newTestContainer(0)
	for _, o := range objs {
		mustAdd(t, forward, NewDrawable(o))
	}
	backward := newTestContainer(0)
	for i := len(objs) - 1; i >= 0; i-- {
		mustAdd(t, backward, NewDrawable(objs[i]))
	}

	want := []string{"d", "b", "c", "a"}
	if got := ids(forward.Children()); !slices.Equal(got, want) {
		t.Errorf("Forward insertion: expected %v, got %v", want, got)
	}
	if got := ids(backward.Children()); !slices.Equal(got, want) {
		t.Errorf("Backward insertion: expected %v, got %v", want, got)
	}
}

func TestContainerOrderMatchesFullSort(t *testing.T) {
	c := newTestContainer(0)
	for i, start := range []float64{400, 100, 400, 250, 400, 100, 900} {
		d := NewDrawable(timing.Instant(string(rune('a'+i)), start, 1, 1))
		mustAdd(t, c, d)
	}

	sorted := c.Children()
	slices.Reverse(sorted)
	slices.SortFunc(sorted, Compare)

	if !slices.Equal(ids(sorted), ids(c.Children())) {
		t.Errorf("Incremental order %v differs from full sort %v", ids(c.Children()), ids(sorted))
	}
}

func TestChangeChildDepthReorders(t *testing.T) {
	c := newTestContainer(0)
	a := NewDrawable(timing.Instant("a", 400, 10, 10))
	b := NewDrawable(timing.Instant("b", 400, 10, 10))
	x := NewDrawable(timing.Instant("x", 100, 10, 10))
	mustAdd(t, c, a)
	mustAdd(t, c, b)
	mustAdd(t, c, x)

	if got := ids(c.Children()); !slices.Equal(got, []string{"b", "a", "x"}) {
		t.Fatalf("Unexpected initial order %v", got)
	}
	idB := b.ChildID()

	b.SetDepth(5)

	if b.Depth() != 5 {
		t.Errorf("Expected depth 5, got %v", b.Depth())
	}
	if b.ChildID() != idB {
		t.Errorf("Depth change should keep child ID %d, got %d", idB, b.ChildID())
	}

	sorted := c.Children()
	slices.SortFunc(sorted, Compare)
	if got := ids(c.Children()); !slices.Equal(got, ids(sorted)) {
		t.Errorf("Container order %v disagrees with full sort %v", got, ids(sorted))
	}
	if got := ids(c.Children()); !slices.Equal(got, []string{"a", "b", "x"}) {
		t.Errorf("Expected [a b x] after depth change, got %v", got)
	}
	if got := ids(c.HitTestOrder()); !slices.Equal(got, []string{"x", "b", "a"}) {
		t.Errorf("Expected hit test order [x b a], got %v", got)
	}

	other := newTestContainer(0)
	if other.ChangeChildDepth(a, 3) {
		t.Error("ChangeChildDepth should fail for a drawable of another container")
	}
	if a.Depth() != 0 {
		t.Errorf("Depth should be unchanged, got %v", a.Depth())
	}
}
