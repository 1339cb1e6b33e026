package memory

// Entry is one context document. Keys are /-separated relative paths.
type Entry struct {
	Key   string
	Value []byte
}
