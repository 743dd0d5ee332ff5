package platform

import (
	"os"
	"path/filepath"
)

// RPLSize is the byte length of a SUPER-CHIP RPL persistent-storage file.
const RPLSize = 8

// RPLStore loads and saves the 8-byte RPL persistent-storage buffer
// SUPER-CHIP's FX75/FX85 read and write, as a flat file in the OS data
// directory. The core never touches the filesystem itself — spec.md
// §1 places this explicitly outside the interpreter.
type RPLStore struct {
	path string
}

// DefaultRPLPath returns "<UserConfigDir>/chip8vm/<romBaseName>.rpl".
func DefaultRPLPath(romPath string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	base := filepath.Base(romPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + ".rpl"
	return filepath.Join(dir, "chip8vm", name), nil
}

// NewRPLStore builds a store backed by path.
func NewRPLStore(path string) *RPLStore {
	return &RPLStore{path: path}
}

// Load reads the RPL file into an 8-byte buffer. A missing file yields
// an all-zero buffer (first run); a short file is zero-padded.
func (s *RPLStore) Load() ([]byte, error) {
	buf := make([]byte, RPLSize)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return buf, nil
	}
	if err != nil {
		return nil, err
	}

	copy(buf, data)
	return buf, nil
}

// Save writes buf (expected to be RPLSize bytes) to the RPL file,
// creating its parent directory if needed.
func (s *RPLStore) Save(buf []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, buf, 0o644)
}
