package extractor

// Cache remembers outcomes by file identity and content, so unchanged
// files are not parsed again. Implementations must be safe for concurrent
// use.
type Cache interface {
	Get(relPath string, source []byte) (Outcome, bool)
	Add(relPath string, source []byte, outcome Outcome)
}

// SetCache installs a cache consulted by ExtractFile. Passing nil disables
// caching.
func (e *Extractor) SetCache(c Cache) {
	e.cache = c
}
