// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore implements [BlobStore] on the local filesystem.
type DiskStore struct {
	directory string
	baseURL   string
}

// NewDiskStore creates a disk-backed blob store rooted at directory. Files
// become reachable under baseURL.
func NewDiskStore(directory, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("disk_store_mkdir_failed: %w", err)
	}
	return &DiskStore{directory: directory, baseURL: baseURL}, nil
}

// Directory returns the store's root, for wiring the static file server.
func (s *DiskStore) Directory() string {
	return s.directory
}

func (s *DiskStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	// The name is generated upstream; strip any path the client smuggled in.
	name = filepath.Base(name)

	target, err := os.Create(filepath.Join(s.directory, name))
	if err != nil {
		return "", fmt.Errorf("disk_store_create_failed: %w", err)
	}
	defer target.Close()

	if _, err := io.Copy(target, content); err != nil {
		os.Remove(target.Name())
		return "", fmt.Errorf("disk_store_write_failed: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
