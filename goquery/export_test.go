package goquery

// CompiledSites reports how many site records the extractor has cached.
func (e *Extractor) CompiledSites() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.compiled)
}
