package util

import "sync"

type SyncMap[K comparable, V any] struct {
	buffer map[K]V
	mtx    sync.RWMutex
}

// LoadOrStore returns the value under key, creating it first if absent.
func (mp *SyncMap[K, V]) LoadOrStore(key K, create func() V) V {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	if value, ok := mp.buffer[key]; ok {
		return value
	}
	value := create()
	mp.buffer[key] = value
	return value
}

// Retain visits entries under the write lock, so fn may not touch the map.
// Returning false from fn drops the entry.
func (mp *SyncMap[K, V]) Retain(fn func(key K, value V) bool) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()
	for k, v := range mp.buffer {
		if !fn(k, v) {
			delete(mp.buffer, k)
		}
	}
}

func (mp *SyncMap[K, V]) Len() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return len(mp.buffer)
}

func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		buffer: make(map[K]V),
	}
}
