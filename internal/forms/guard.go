// guard.go
//
// Cycle Companion, a menstrual cycle tracking and wellness data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cycle-companion.
// cycle-companion is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cycle-companion is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cycle-companion.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package forms

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Guard admits one outstanding submit per (user, form). A second submit for a
// busy key is refused immediately instead of queueing behind the first.
type Guard struct {
	mu       sync.Mutex
	inflight map[string]*semaphore.Weighted
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inflight: make(map[string]*semaphore.Weighted)}
}

// TryAcquire claims the (userID, form) slot. On success the returned release
// func must be called exactly once when the submit completes.
func (g *Guard) TryAcquire(userID, form string) (release func(), ok bool) {
	key := userID + "\x00" + form

	g.mu.Lock()
	defer g.mu.Unlock()

	sem, exists := g.inflight[key]
	if !exists {
		sem = semaphore.NewWeighted(1)
		g.inflight[key] = sem
	}
	if !sem.TryAcquire(1) {
		return nil, false
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			sem.Release(1)
			delete(g.inflight, key)
		})
	}, true
}

// Busy reports whether a submit for (userID, form) is outstanding. Request
// handling never calls it; it lets tests and diagnostics observe the guard.
func (g *Guard) Busy(userID, form string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, exists := g.inflight[userID+"\x00"+form]
	return exists
}
