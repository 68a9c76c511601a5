/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package pconn

import (
	"sync"

	"github.com/beeql/beeql/pruntime"
)

// reentrantLock serializes every entry point of a [Connection]'s engine
// handle. It must be reentrant because the embedded SQL engine re-enters
// the wrapper from within its own scalar-function and virtual-table
// callbacks while the outer Lock call is still held by the same goroutine:
// a plain [sync.Mutex] would self-deadlock.
//
// Go has no native recursive mutex; this counter keyed by
// [pruntime.GoRoutineID] is the smallest addition that restores the
// property.
type reentrantLock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner string
	depth int
}

func newReentrantLock() *reentrantLock {
	l := &reentrantLock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Lock acquires the lock for the calling goroutine, or increments the
// re-entry depth if the calling goroutine already holds it.
func (l *reentrantLock) Lock() {
	id := pruntime.GoRoutineID()
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.depth > 0 && l.owner != id {
		l.cond.Wait()
	}
	l.owner = id
	l.depth++
}

// Unlock decrements the re-entry depth, releasing the lock to other
// goroutines once it reaches zero. Unlock by a goroutine that does not hold
// the lock is a programmer error and panics, matching [sync.Mutex.Unlock]'s
// own behavior on a never-locked mutex.
func (l *reentrantLock) Unlock() {
	id := pruntime.GoRoutineID()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.depth == 0 || l.owner != id {
		panic("pconn: Unlock of reentrantLock not held by calling goroutine")
	}
	l.depth--
	if l.depth == 0 {
		l.owner = ""
		l.cond.Broadcast()
	}
}
