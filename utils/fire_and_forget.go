// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package utils

import "sync"

// FireAndForgetSynchronizer runs background work that the request does
// not wait for, while still letting tests wait for everything to
// finish.
type FireAndForgetSynchronizer interface {
	FireAndForget(fn func())
}

type fireAndForgetSynchronizer struct {
	wg sync.WaitGroup
}

func NewFireAndForgetSynchronizer() *fireAndForgetSynchronizer {
	return &fireAndForgetSynchronizer{}
}

func (s *fireAndForgetSynchronizer) FireAndForget(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until all fired functions have returned.
func (s *fireAndForgetSynchronizer) Wait() {
	s.wg.Wait()
}

// SyncFireAndForget executes the function inline. Used in tests where
// background scheduling would make assertions racy.
type SyncFireAndForget struct{}

func (SyncFireAndForget) FireAndForget(fn func()) {
	fn()
}
