package ringbuffer

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
)

// waitToken is a single-shot, manual-reset wakeup primitive: wait blocks
// until wake is called, and a wake that precedes the wait is latched, not
// lost. It is modeled on bruceshao-lockfree's ChanBlockStrategy, which uses
// a bare channel the same way instead of a sync.Cond or semaphore package.
type waitToken struct {
	ch chan struct{}
}

func newWaitToken() *waitToken {
	return &waitToken{ch: make(chan struct{})}
}

func (t *waitToken) wait() {
	<-t.ch
}

// wake is called exactly once per token, by whichever of {unblockNext,
// cancel, close} first takes ownership of it under the parkSet mutex.
func (t *waitToken) wake() {
	close(t.ch)
}

// parkSet is a closable FIFO of parked waiters for one side of the
// channel (blocked readers or blocked writers). The waiter queue itself is
// github.com/eapache/queue's ring-buffer-backed Queue rather than a
// hand-rolled slice or container/list, the same off-the-shelf FIFO
// momentics-hioload-ws reaches for ahead of the standard library's list.
type parkSet struct {
	mu     sync.Mutex
	q      *queue.Queue
	empty  atomic.Bool
	closed bool
}

func newParkSet() *parkSet {
	p := &parkSet{q: queue.New()}
	p.empty.Store(true)
	return p
}

// tryRegister appends a fresh token to the FIFO and returns it, unless the
// set is already closed. Closed is the only failure mode.
func (p *parkSet) tryRegister() (*waitToken, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, false
	}
	tok := newWaitToken()
	p.q.Add(tok)
	p.empty.Store(false)
	return tok, true
}

// cancel removes tok from the FIFO if it is still present. It is idempotent
// for tokens that have already been woken or dropped by close — those are
// no longer in the queue, so cancel is a no-op for them.
func (p *parkSet) cancel(tok *waitToken) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.q.Length()
	idx := -1
	for i := 0; i < n; i++ {
		if p.q.Get(i).(*waitToken) == tok {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	kept := make([]*waitToken, 0, n-1)
	for i := 0; i < n; i++ {
		v := p.q.Remove().(*waitToken)
		if i != idx {
			kept = append(kept, v)
		}
	}
	for _, v := range kept {
		p.q.Add(v)
	}
	p.empty.Store(p.q.Length() == 0)
}

// unblockNext wakes the single oldest registered waiter, if any. The empty
// flag is a hint checked without the mutex; correctness never depends on
// it, it only saves a lock acquisition on the common case of nobody
// parked.
func (p *parkSet) unblockNext() {
	if p.empty.Load() {
		return
	}

	p.mu.Lock()
	if p.q.Length() == 0 {
		p.mu.Unlock()
		return
	}
	tok := p.q.Remove().(*waitToken)
	if p.q.Length() == 0 {
		p.empty.Store(true)
	}
	p.mu.Unlock()

	tok.wake()
}

// close wakes every currently parked waiter, empties the FIFO, and rejects
// all future registrations.
func (p *parkSet) close() {
	p.mu.Lock()
	p.closed = true
	n := p.q.Length()
	woken := make([]*waitToken, 0, n)
	for i := 0; i < n; i++ {
		woken = append(woken, p.q.Remove().(*waitToken))
	}
	p.empty.Store(true)
	p.mu.Unlock()

	for _, tok := range woken {
		tok.wake()
	}
}
