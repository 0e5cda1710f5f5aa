package localizedcontent

// Patch applies a partial update to an attribute set. Implementations copy
// only the fields that were explicitly supplied and leave the rest of the
// attributes untouched.
type Patch[A any] interface {
	Apply(A) A
}

// Set copies *src into *dst when src is non-nil. It is the building block
// for pick-defined patch application: a nil source means "field absent",
// never "clear the field".
func Set[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
