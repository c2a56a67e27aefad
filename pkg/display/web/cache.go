package web

// cache mirrors the frames held by every client, so that a frame
// seen recently is sent as an index instead of its pixels. The
// client stores each frame at the index it was sent with.
type cache struct {
	hashes []uint64
	valid  []bool
	idx    int
}

func newCache(size int) *cache {
	return &cache{
		hashes: make([]uint64, size),
		valid:  make([]bool, size),
	}
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, h := range c.hashes {
		if c.valid[i] && h == hash {
			return i
		}
	}

	return -1
}

// add stores hash in the oldest slot and returns the slot.
func (c *cache) add(hash uint64) int {
	i := c.idx
	c.hashes[i] = hash
	c.valid[i] = true
	c.idx = (c.idx + 1) % len(c.hashes)
	return i
}

// reset invalidates every slot, for when a client joins with an
// empty cache.
func (c *cache) reset() {
	for i := range c.valid {
		c.valid[i] = false
	}
	c.idx = 0
}
