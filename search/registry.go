package search

import "sync"

// documentRegistry is the in-memory registry of indexed documents feeding
// the scan-based strategies. It is the only shared mutable state besides
// the inverted index; both are owned exclusively by the engine.
type documentRegistry struct {
	mu   sync.RWMutex
	byID map[string]*SearchableDocument
	docs []*SearchableDocument // insertion order, for deterministic scans
}

func newDocumentRegistry() *documentRegistry {
	return &documentRegistry{
		byID: make(map[string]*SearchableDocument),
	}
}

// contains reports whether id is already registered.
func (r *documentRegistry) contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// add registers doc. Returns false if the id is already present, leaving
// the existing entry untouched.
func (r *documentRegistry) add(doc *SearchableDocument) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[doc.ID]; ok {
		return false
	}
	r.byID[doc.ID] = doc
	r.docs = append(r.docs, doc)
	return true
}

// remove deletes the document with the given id. Returns false if absent.
func (r *documentRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, d := range r.docs {
		if d.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			break
		}
	}
	return true
}

// get returns the document with the given id, or nil.
func (r *documentRegistry) get(id string) *SearchableDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// snapshot returns a copy of the document slice. Documents themselves are
// immutable once indexed, so sharing the pointers is safe; concurrent
// searches each scan their own consistent snapshot.
func (r *documentRegistry) snapshot() []*SearchableDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*SearchableDocument, len(r.docs))
	copy(out, r.docs)
	return out
}

// size returns the number of registered documents.
func (r *documentRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
