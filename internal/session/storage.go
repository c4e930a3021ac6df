// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Change describes an externally-observed storage mutation, mirroring a
// browser storage event: it fires in every context except the one that made
// the change.
type Change struct {
	Key string

	// NewValue is nil when the key was removed.
	NewValue *string
}

// Storage is the durable key/value store backing the session record.
//
// It mirrors browser localStorage plus its cross-context storage events. A
// nil Storage is valid: the session store then degrades every read to
// "not authenticated" instead of failing.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)

	// Watch delivers changes made by other contexts sharing the same
	// underlying store. Changes made through this instance are not echoed.
	Watch() <-chan Change
}

// ── 1. In-Memory Storage ──

// Broadcaster is the shared substrate behind a set of [MemoryStorage]
// contexts, playing the role of the browser's per-origin storage area.
// Opening several contexts from one Broadcaster simulates multiple tabs.
type Broadcaster struct {
	mu       sync.Mutex
	values   map[string]string
	contexts []*MemoryStorage
}

// NewBroadcaster creates an empty shared storage area.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{values: make(map[string]string)}
}

// Context opens a new browsing context over the shared area.
func (broadcaster *Broadcaster) Context() *MemoryStorage {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	storage := &MemoryStorage{
		broadcaster: broadcaster,
		events:      make(chan Change, 16),
	}
	broadcaster.contexts = append(broadcaster.contexts, storage)
	return storage
}

// notify fans a change out to every context except origin. Callers must hold
// the broadcaster mutex.
func (broadcaster *Broadcaster) notify(origin *MemoryStorage, change Change) {
	for _, ctx := range broadcaster.contexts {
		if ctx == origin {
			continue
		}
		select {
		case ctx.events <- change:
		default:
			// A context that stopped draining its events forfeits them.
		}
	}
}

// MemoryStorage is one browsing context over a [Broadcaster].
type MemoryStorage struct {
	broadcaster *Broadcaster
	events      chan Change
}

// NewMemoryStorage returns a standalone single-context store.
func NewMemoryStorage() *MemoryStorage {
	return NewBroadcaster().Context()
}

func (storage *MemoryStorage) Get(key string) (string, bool) {
	storage.broadcaster.mu.Lock()
	defer storage.broadcaster.mu.Unlock()

	value, ok := storage.broadcaster.values[key]
	return value, ok
}

func (storage *MemoryStorage) Set(key, value string) {
	storage.broadcaster.mu.Lock()
	defer storage.broadcaster.mu.Unlock()

	storage.broadcaster.values[key] = value
	storage.broadcaster.notify(storage, Change{Key: key, NewValue: &value})
}

func (storage *MemoryStorage) Remove(key string) {
	storage.broadcaster.mu.Lock()
	defer storage.broadcaster.mu.Unlock()

	if _, ok := storage.broadcaster.values[key]; !ok {
		return
	}
	delete(storage.broadcaster.values, key)
	storage.broadcaster.notify(storage, Change{Key: key})
}

func (storage *MemoryStorage) Watch() <-chan Change {
	return storage.events
}

// ── 2. File Storage ──

// filePollInterval is how often FileStorage checks for external writes.
const filePollInterval = time.Second

// FileStorage persists the key/value map as a JSON file, giving the CLI
// session persistence across runs. External writers (another process using
// the same file) are observed by polling the file's modification time.
type FileStorage struct {
	mu     sync.Mutex
	path   string
	values map[string]string

	events  chan Change
	lastMod time.Time
	done    chan struct{}
	once    sync.Once
}

// NewFileStorage loads (or creates) the state file at path and starts the
// external-change watcher. Callers must Close the storage when done.
func NewFileStorage(path string) (*FileStorage, error) {
	storage := &FileStorage{
		path:   path,
		values: make(map[string]string),
		events: make(chan Change, 16),
		done:   make(chan struct{}),
	}

	if err := storage.load(); err != nil {
		return nil, err
	}
	if info, err := os.Stat(path); err == nil {
		storage.lastMod = info.ModTime()
	}

	go storage.poll()
	return storage, nil
}

// Close stops the external-change watcher.
func (storage *FileStorage) Close() {
	storage.once.Do(func() { close(storage.done) })
}

func (storage *FileStorage) Get(key string) (string, bool) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	value, ok := storage.values[key]
	return value, ok
}

func (storage *FileStorage) Set(key, value string) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	storage.values[key] = value
	storage.persist()
}

func (storage *FileStorage) Remove(key string) {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	if _, ok := storage.values[key]; !ok {
		return
	}
	delete(storage.values, key)
	storage.persist()
}

func (storage *FileStorage) Watch() <-chan Change {
	return storage.events
}

func (storage *FileStorage) load() error {
	data, err := os.ReadFile(storage.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	// A corrupt state file reads as empty rather than failing start-up.
	var values map[string]string
	if json.Unmarshal(data, &values) == nil {
		storage.values = values
	}
	return nil
}

// persist writes the map atomically via a temp file and rename. Callers
// must hold the mutex.
func (storage *FileStorage) persist() {
	if err := os.MkdirAll(filepath.Dir(storage.path), 0o700); err != nil {
		return
	}

	data, err := json.MarshalIndent(storage.values, "", "  ")
	if err != nil {
		return
	}

	tempPath := storage.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return
	}
	if os.Rename(tempPath, storage.path) == nil {
		if info, statErr := os.Stat(storage.path); statErr == nil {
			storage.lastMod = info.ModTime()
		}
	}
}

// poll watches the file's modification time and emits a Change for every
// key that differs after an external write.
func (storage *FileStorage) poll() {
	ticker := time.NewTicker(filePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-storage.done:
			return
		case <-ticker.C:
			storage.reloadIfChanged()
		}
	}
}

func (storage *FileStorage) reloadIfChanged() {
	storage.mu.Lock()
	defer storage.mu.Unlock()

	info, err := os.Stat(storage.path)
	if err != nil || !info.ModTime().After(storage.lastMod) {
		return
	}
	storage.lastMod = info.ModTime()

	data, err := os.ReadFile(storage.path)
	if err != nil {
		return
	}
	fresh := make(map[string]string)
	if json.Unmarshal(data, &fresh) != nil {
		return
	}

	previous := storage.values
	storage.values = fresh

	for key, oldValue := range previous {
		newValue, still := fresh[key]
		switch {
		case !still:
			storage.emit(Change{Key: key})
		case newValue != oldValue:
			value := newValue
			storage.emit(Change{Key: key, NewValue: &value})
		}
	}
	for key, newValue := range fresh {
		if _, existed := previous[key]; !existed {
			value := newValue
			storage.emit(Change{Key: key, NewValue: &value})
		}
	}
}

func (storage *FileStorage) emit(change Change) {
	select {
	case storage.events <- change:
	default:
	}
}
