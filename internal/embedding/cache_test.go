package embedding

import "testing"

func TestQueryCacheEvictsLeastRecentlyAsked(t *testing.T) {
	c := newQueryCache(2)
	if v, ok := c.Get("how do I block my card?"); ok || v != nil {
		t.Fatal("expected a miss on an empty cache")
	}
	c.Set("how do I block my card?", []float32{1, 2, 3})
	v, ok := c.Get("how do I block my card?")
	if !ok || len(v) != 3 || v[0] != 1 {
		t.Errorf("Get after Set: got %v, %v", v, ok)
	}
	c.Set("is upi safe?", []float32{4, 5})
	// Asking the first question again makes the second one the eviction
	// candidate.
	c.Get("how do I block my card?")
	c.Set("what is phishing?", []float32{6})
	if _, ok := c.Get("is upi safe?"); ok {
		t.Error("least recently asked question should have been evicted")
	}
	if _, ok := c.Get("how do I block my card?"); !ok {
		t.Error("recently asked question should remain cached")
	}
	if _, ok := c.Get("what is phishing?"); !ok {
		t.Error("newest question should be cached")
	}
}

func TestQueryCacheUpdateKeepsSingleEntry(t *testing.T) {
	c := newQueryCache(2)
	c.Set("q", []float32{1})
	c.Set("q", []float32{2})
	if v, ok := c.Get("q"); !ok || v[0] != 2 {
		t.Errorf("update should replace the vector, got %v, %v", v, ok)
	}
	if c.order.Len() != 1 {
		t.Errorf("update must not duplicate entries, len=%d", c.order.Len())
	}
}
