package pipeline

import "sort"

// counter is a frequency table that remembers insertion order so that ranking
// ties resolve to first-seen order. Map iteration order would make the
// ranking, and everything downstream of it, nondeterministic.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// Add increments the count for key, recording the key on first sight.
func (c *counter) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Merge adds every count from other into c. Keys new to c keep other's
// first-seen position relative to c's existing keys.
func (c *counter) Merge(other *counter) {
	for _, key := range other.order {
		if _, ok := c.counts[key]; !ok {
			c.order = append(c.order, key)
		}
		c.counts[key] += other.counts[key]
	}
}

type keyCount struct {
	Key   string
	Count int
}

// MostCommon returns up to n entries by descending count. Equal counts keep
// first-seen order. n < 0 returns all entries.
func (c *counter) MostCommon(n int) []keyCount {
	ranked := make([]keyCount, len(c.order))
	for i, key := range c.order {
		ranked[i] = keyCount{Key: key, Count: c.counts[key]}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Count > ranked[b].Count })
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
