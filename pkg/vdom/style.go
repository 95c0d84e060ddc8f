package vdom

// StyleProp is a single style property.
type StyleProp struct {
	Name  string
	Value string
}

// Style is an ordered mapping of style property name to value.
//
// The engine compares styles by pointer: an update re-applies a style only
// when the next node carries a different *Style than the previous one.
type Style struct {
	props []StyleProp
}

// NewStyle builds a Style from name/value pairs. A trailing name without a
// value is ignored.
func NewStyle(pairs ...string) *Style {
	s := &Style{props: make([]StyleProp, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

// Set sets name to value, keeping the position of an existing name.
func (s *Style) Set(name, value string) *Style {
	for i := range s.props {
		if s.props[i].Name == name {
			s.props[i].Value = value
			return s
		}
	}
	s.props = append(s.props, StyleProp{Name: name, Value: value})
	return s
}

// Get returns the value for name.
func (s *Style) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, p := range s.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Len returns the number of properties.
func (s *Style) Len() int {
	if s == nil {
		return 0
	}
	return len(s.props)
}

// Keys returns the property names in order.
func (s *Style) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.props))
	for i, p := range s.props {
		keys[i] = p.Name
	}
	return keys
}

// Each calls fn for every property in order. Each on a nil Style is a no-op.
func (s *Style) Each(fn func(name, value string)) {
	if s == nil {
		return
	}
	for _, p := range s.props {
		fn(p.Name, p.Value)
	}
}
