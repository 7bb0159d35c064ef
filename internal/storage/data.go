package storage

// Persistence

// WriteResult identifies one written artifact. Digest is the BLAKE3
// hash of the written bytes, so successive runs can be compared
// without diffing file contents.
type WriteResult struct {
	name   string
	path   string
	digest string
}

func NewWriteResult(
	name string,
	path string,
	digest string,
) WriteResult {
	return WriteResult{
		name:   name,
		path:   path,
		digest: digest,
	}
}

// Name is the list name without the ".seeds.<ext>" suffix; the
// multi-seeds manifest is built from these.
func (w WriteResult) Name() string {
	return w.name
}

func (w WriteResult) Path() string {
	return w.path
}

func (w WriteResult) Digest() string {
	return w.digest
}
