package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex сериализует обработку по ключу привязанного аккаунта.
// Пачки работ для разных аккаунтов идут параллельно, для одного —
// строго по очереди, чтобы не плодить дубликаты предложений.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*accountLock)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
func (k *keyedMutex) Lock(key uuid.UUID) func() {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &accountLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
