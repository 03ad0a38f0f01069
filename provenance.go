package cascade

// Provenance describes where a key's effective value came from.
type Provenance struct {
	Key    string
	Source Source
	Name   string // Switch, variable, locator, or settings file path
}

// Explain reports which source answers key, without reading secret values
// into the result. It returns false when no source has the key.
// It panics if key is bound to a malformed secret locator.
func (s *Settings) Explain(key string) (Provenance, bool) {
	r, err := s.resolve(key, true)
	if err != nil {
		panic(err)
	}
	if !r.found {
		return Provenance{}, false
	}
	return Provenance{Key: key, Source: r.source, Name: r.name}, true
}
