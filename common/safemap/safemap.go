package safemap

import "sync"

// Safemap is a mutex-guarded map for many-writer access.
type Safemap[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, val V)
	Delete(key K)
	Exists(key K) bool
	Foreach(it func(K, V) bool)
	Count() int
}

type safemapImpl[K comparable, V any] struct {
	data  map[K]V
	mutex sync.RWMutex
}

func New[K comparable, V any]() Safemap[K, V] {
	return &safemapImpl[K, V]{
		data: make(map[K]V),
	}
}

func (h *safemapImpl[K, V]) Get(key K) (V, bool) {
	h.mutex.RLock()
	v, ex := h.data[key]
	h.mutex.RUnlock()
	return v, ex
}

func (h *safemapImpl[K, V]) Set(key K, val V) {
	h.mutex.Lock()
	h.data[key] = val
	h.mutex.Unlock()
}

func (h *safemapImpl[K, V]) Delete(key K) {
	h.mutex.Lock()
	delete(h.data, key)
	h.mutex.Unlock()
}

func (h *safemapImpl[K, V]) Exists(key K) bool {
	h.mutex.RLock()
	_, ex := h.data[key]
	h.mutex.RUnlock()
	return ex
}

// Foreach iterates until it returns false. Mutating the map from the
// callback deadlocks.
func (h *safemapImpl[K, V]) Foreach(it func(K, V) bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for k, v := range h.data {
		if !it(k, v) {
			break
		}
	}
}

func (h *safemapImpl[K, V]) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.data)
}
