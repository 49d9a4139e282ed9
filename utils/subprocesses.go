package utils

import "sync"

// Subprocesses tracks goroutines started on behalf of an owner so the
// owner can wait for all of them on shutdown.
type Subprocesses struct {
	wg sync.WaitGroup
}

func (s *Subprocesses) Go(f func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		f()
	}()
}

func (s *Subprocesses) Wait() {
	s.wg.Wait()
}
