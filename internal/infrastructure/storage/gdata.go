package storage

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

// progressItem is the gdata item holding the JSON snapshot
const progressItem = "progress"

// blobStore is the subset of gdata.Manager used by GDataStore
type blobStore interface {
	SaveItem(itemKey string, data []byte) error
	LoadItem(itemKey string) ([]byte, error)
	DeleteItem(itemKey string) error
}

// GDataStore keeps the snapshot as a JSON item in the platform's app data
type GDataStore struct {
	blobs blobStore
}

// OpenGData opens the app data directory of appName
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data: %w", err)
	}
	return &GDataStore{blobs: m}, nil
}

// Save implements Store
func (s *GDataStore) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode progress: %w", err)
	}
	if err := s.blobs.SaveItem(progressItem, data); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Load implements Store
func (s *GDataStore) Load() (Snapshot, error) {
	data, err := s.blobs.LoadItem(progressItem)
	if err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	if len(data) == 0 {
		return Snapshot{}, ErrNotFound
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("storage: cannot parse progress: %w", err)
	}
	if snap.Levels == nil {
		snap.Levels = make(map[string]Record)
	}
	return snap, nil
}

// Clear implements Store
func (s *GDataStore) Clear() error {
	if err := s.blobs.DeleteItem(progressItem); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	return nil
}
