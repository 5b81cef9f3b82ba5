package scrolling

import "cmp"

// Compare orders drawables for drawing and hit testing: objects that start
// later come first. Simultaneous objects use the inverse of the structural
// order, so the newest insertion at the lowest depth comes first.
func Compare(x, y *Drawable) int {
	if c := cmp.Compare(y.HitObject.StartTime, x.HitObject.StartTime); c != 0 {
		return c
	}
	return structuralCompare(y, x)
}

// structuralCompare is the default container order: higher depth first,
// then earlier insertion first.
func structuralCompare(x, y *Drawable) int {
	if c := cmp.Compare(y.depth, x.depth); c != 0 {
		return c
	}
	return cmp.Compare(x.childID, y.childID)
}
