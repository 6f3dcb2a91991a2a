package pkgmanager

// RequestSet holds requested packages per dependency class, in first-request
// order without duplicates.
type RequestSet struct {
	runtime []string
	dev     []string
	seen    map[string]bool
}

// Add records packages for the runtime class, or the development class when
// dev is true. A package already requested in the same class is ignored.
func (s *RequestSet) Add(dev bool, packages ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, p := range packages {
		if p == "" {
			continue
		}
		key := classKey(dev, p)
		if s.seen[key] {
			continue
		}
		s.seen[key] = true
		if dev {
			s.dev = append(s.dev, p)
		} else {
			s.runtime = append(s.runtime, p)
		}
	}
}

// Runtime returns the requested production packages.
func (s *RequestSet) Runtime() []string {
	return append([]string(nil), s.runtime...)
}

// Dev returns the requested development packages.
func (s *RequestSet) Dev() []string {
	return append([]string(nil), s.dev...)
}

// Len returns the number of requested packages across both classes.
func (s *RequestSet) Len() int {
	return len(s.runtime) + len(s.dev)
}

func classKey(dev bool, p string) string {
	if dev {
		return "dev:" + p
	}
	return "run:" + p
}
