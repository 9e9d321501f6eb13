package util

import "sync"

func WithWriteLock[T any](mutex *sync.RWMutex, task func() (T, error)) (T, error) {
	mutex.Lock()
	defer mutex.Unlock()
	return task()
}

func WithReadLock[T any](mutex *sync.RWMutex, task func() (T, error)) (T, error) {
	mutex.RLock()
	defer mutex.RUnlock()
	return task()
}
