package dao

// ParameterState filters records by their state.
const ParameterState = "State"

// Parameter is a named List filter.  Value holds a string, or a []string
// matching any of its elements.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a filter; several values match any of them.
func NewParameter(name string, values ...string) *Parameter {
	ret := &Parameter{Name: name}
	switch len(values) {
	case 0:
	case 1:
		ret.Value = values[0]
	default:
		ret.Value = values
	}
	return ret
}
