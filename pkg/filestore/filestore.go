// Package filestore defines the file read/write capability consumed by the
// compiler, plus OS-backed and in-memory implementations.
package filestore

import "os"

// Store is the narrow collaborator interface the compiler links and writes
// through. ReadFile reports absence rather than error detail; WriteFile
// reports success.
type Store interface {
	ReadFile(path string) (string, bool)
	WriteFile(path string, data []byte) bool
}

// Disk is a Store backed by the operating system filesystem.
type Disk struct{}

// NewDisk creates an OS-backed store.
func NewDisk() *Disk {
	return &Disk{}
}

func (*Disk) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (*Disk) WriteFile(path string, data []byte) bool {
	return os.WriteFile(path, data, 0644) == nil
}

// Mem is an in-memory Store keyed by exact path. It stands in for the
// host's virtual filesystem in tests and embedding hosts.
type Mem struct {
	files map[string][]byte
}

// NewMem creates an empty in-memory store.
func NewMem() *Mem {
	return &Mem{files: make(map[string][]byte)}
}

// Put seeds a file, replacing any previous content.
func (m *Mem) Put(path, content string) {
	m.files[path] = []byte(content)
}

func (m *Mem) ReadFile(path string) (string, bool) {
	data, ok := m.files[path]
	if !ok {
		return "", false
	}
	return string(data), true
}

func (m *Mem) WriteFile(path string, data []byte) bool {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[path] = buf
	return true
}

// Get returns raw stored bytes.
func (m *Mem) Get(path string) ([]byte, bool) {
	data, ok := m.files[path]
	return data, ok
}
