package levels

import "time"

// ChangeTracker remembers the disk modification time of each level it has
// seen, so repeated watcher events for the same write reload only once.
type ChangeTracker struct {
	src  Source
	seen map[int]time.Time
}

func NewChangeTracker(src Source) *ChangeTracker {
	return &ChangeTracker{src: src, seen: make(map[int]time.Time)}
}

// Mark records the current modification time of level n.
func (c *ChangeTracker) Mark(n int) {
	if mod, ok := c.src.ModTime(levelFile(n)); ok {
		c.seen[n] = mod
	}
}

// Changed reports whether level n was modified since it was last marked and
// marks it. Levels with no disk copy never change.
func (c *ChangeTracker) Changed(n int) bool {
	mod, ok := c.src.ModTime(levelFile(n))
	if !ok {
		return false
	}
	if prev, ok := c.seen[n]; ok && prev.Equal(mod) {
		return false
	}
	c.seen[n] = mod
	return true
}
