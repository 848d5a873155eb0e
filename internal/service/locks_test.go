package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocks_SerializesSameUser(t *testing.T) {
	locks := NewUserLocks()

	const iterations = 200
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				unlock := locks.Lock("user-1")
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*iterations, counter)
}

func TestUserLocks_IndependentUsersDoNotBlock(t *testing.T) {
	locks := NewUserLocks()

	unlockA := locks.Lock("user-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("user-b")
		unlockB()
		close(done)
	}()
	<-done
}

func TestUserLocks_TableShrinksAfterRelease(t *testing.T) {
	locks := NewUserLocks()

	unlock := locks.Lock("user-1")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}
