package semantic

// FieldOrderMessage is reported for every field that breaks FieldOrder.
const FieldOrderMessage = "Fields with a default value must come after any fields without a default."

// FieldOrder checks that no field lacking a default follows a field with a
// default, as positional constructor parameters require. Elements for which
// isField is false are ignored. It returns the defaulted fields that precede
// the last field without a default, in order; an empty result means the
// order is legal.
func FieldOrder[T any](fields []T, isField, hasDefault func(T) bool) []T {
	last := -1
	for i, f := range fields {
		if isField(f) && !hasDefault(f) {
			last = i
		}
	}

	var misplaced []T
	for i := 0; i < last; i++ {
		if isField(fields[i]) && hasDefault(fields[i]) {
			misplaced = append(misplaced, fields[i])
		}
	}
	return misplaced
}
