package models

// Field is one column of a partial update. Set reports whether the column is
// written at all; a nil Value writes NULL.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Assign returns a field that writes v (NULL when v is nil).
func Assign[T any](v *T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// AssignValue returns a field that writes a copy of v.
func AssignValue[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// AssignIfPresent writes v only when it is non-nil.
func AssignIfPresent[T any](v *T) Field[T] {
	if v == nil {
		return Field[T]{}
	}
	return Assign(v)
}

// ApplyTo copies the field into dst when it is set.
func (f Field[T]) ApplyTo(dst **T) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}
