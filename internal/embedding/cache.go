package embedding

import (
	"container/list"
	"sync"
)

// queryCache remembers embeddings for recently seen questions so that
// repeats of the same question (common with the small trained corpus)
// skip model inference. Least recently asked questions are evicted first.
type queryCache struct {
	capacity int
	byText   map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

type queryEntry struct {
	text   string
	vector []float32
}

func newQueryCache(capacity int) *queryCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &queryCache{
		capacity: capacity,
		byText:   make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached vector for a question and marks it recently
// asked. Promotion mutates the list, so reads take the write lock too.
func (c *queryCache) Get(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.byText[text]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*queryEntry).vector, true
}

// Set stores a question's vector, evicting the least recently asked
// question once over capacity.
func (c *queryCache) Set(text string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byText[text]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*queryEntry).vector = vector
		return
	}
	c.byText[text] = c.order.PushFront(&queryEntry{text: text, vector: vector})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byText, oldest.Value.(*queryEntry).text)
	}
}
