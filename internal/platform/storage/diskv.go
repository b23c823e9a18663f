package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv"
)

// DiskStore persists values as flat files under a base directory.
type DiskStore struct {
	disk *diskv.Diskv
}

// NewDiskStore prepares the base directory and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	base := strings.TrimSpace(dir)
	if base == "" {
		base = "./.storage"
	}
	base = filepath.Clean(base)
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	disk := diskv.New(diskv.Options{
		BasePath:     base,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})
	return &DiskStore{disk: disk}, nil
}

func (s *DiskStore) Get(key string) (string, error) {
	value, err := s.disk.Read(strings.TrimSpace(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(value), nil
}

func (s *DiskStore) Set(key, value string) error {
	if err := s.disk.Write(strings.TrimSpace(key), []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Delete(key string) error {
	err := s.disk.Erase(strings.TrimSpace(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

var _ Store = (*DiskStore)(nil)
