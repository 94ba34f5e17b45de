package stat

// Independent is a stat whose value is set directly by callers.
type Independent struct {
	base
}

// NewIndependent creates an independent stat holding the initial value.
func NewIndependent(name string, value float64) *Independent {
	return &Independent{base: base{name: name, value: value}}
}

func (s *Independent) Kind() Kind { return KindIndependent }

// Clone implements Stat.
func (s *Independent) Clone() Stat {
	c := *s
	return &c
}

// Set stores a new value. Only the engine calls this.
func (s *Independent) Set(v float64) (prev, cur float64) {
	return s.commit(v)
}
