package preset

// StoredCount reports how many entries the map holds, expired ones included
func (r *InMemoryRepository) StoredCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
