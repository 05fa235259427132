package resource

// Store exposes the resource directory to HTTP handlers.
type Store interface {
	Directory() Directory
}

// MemoryStore implements Store with a fixed in-memory directory.
type MemoryStore struct {
	dir Directory
}

// NewMemoryStore returns a MemoryStore holding a copy of dir.
func NewMemoryStore(dir Directory) *MemoryStore {
	return &MemoryStore{dir: dir.clone()}
}

// Directory returns a copy so callers cannot mutate the store.
func (s *MemoryStore) Directory() Directory {
	return s.dir.clone()
}

func (d Directory) clone() Directory {
	return Directory{
		Crisis:  append(make([]Resource, 0, len(d.Crisis)), d.Crisis...),
		General: append(make([]Resource, 0, len(d.General)), d.General...),
	}
}
