package entropy

// Script is a Source that replays fixed values, for tests and replays that
// need an exact outcome. Floats and ints are consumed from separate queues;
// when a queue runs dry the last value repeats (or zero if none was given).
type Script struct {
	Floats []float64
	Ints   []int

	fi, ii, ri int
}

// Float64 implements Source.
func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	if s.fi >= len(s.Floats) {
		return s.Floats[len(s.Floats)-1]
	}
	v := s.Floats[s.fi]
	s.fi++
	return v
}

// Intn implements Source. Scripted values are reduced modulo n.
func (s *Script) Intn(n int) int {
	if n <= 0 {
		panic("entropy: invalid argument to Intn")
	}
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[len(s.Ints)-1]
	if s.ii < len(s.Ints) {
		v = s.Ints[s.ii]
		s.ii++
	}
	if v < 0 {
		v = -v
	}
	return v % n
}

// Shuffle implements Source. A script never reorders.
func (s *Script) Shuffle(n int, swap func(i, j int)) {}

// Read implements Source by filling p with a counter pattern.
func (s *Script) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(s.ri + i)
	}
	s.ri++
	return len(p), nil
}
