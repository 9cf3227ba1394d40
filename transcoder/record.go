package transcoder

// Record is implemented by types that list their own encoded fields. The
// returned values become the children of a tuple, in order, and are built
// with the same rules as any other value.
//
// Record takes precedence over every structural rule, so a struct, slice or
// array type implementing it is never walked by reflection.
type Record interface {
	ABIFields() []any
}
