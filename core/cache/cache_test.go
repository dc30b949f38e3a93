package cache

import "testing"

func TestGetPut(t *testing.T) {
	c := NewLRU[uint32, []byte](4)

	if _, ok := c.Get(1); ok {
		t.Fatal("Get on empty cache returned a value")
	}

	c.Put(1, []byte("one"))
	got, ok := c.Get(1)
	if !ok || string(got) != "one" {
		t.Fatalf("Get(1) = %q, %v; want %q, true", got, ok, "one")
	}
}

func TestPutReplaces(t *testing.T) {
	c := NewLRU[string, int](4)
	c.Put("k", 1)
	c.Put("k", 2)
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("Get(k) = %d, want 2", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := NewLRU[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)

	if _, ok := c.Get(1); ok {
		t.Fatal("oldest entry survived eviction")
	}
	if _, ok := c.Get(3); !ok {
		t.Fatal("newest entry missing")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestGetRefreshesRecency(t *testing.T) {
	c := NewLRU[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Get(1)
	c.Put(3, 3)

	if _, ok := c.Get(1); !ok {
		t.Fatal("recently used entry evicted")
	}
	if _, ok := c.Get(2); ok {
		t.Fatal("least recently used entry survived")
	}
}

func TestUnbounded(t *testing.T) {
	c := NewLRU[int, int](0)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}
	if c.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := NewLRU[int, int](4)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatal("Get after Clear returned a value")
	}
}

func TestStats(t *testing.T) {
	c := NewLRU[int, int](2)
	c.Put(1, 1)
	c.Get(1)
	c.Get(2)
	c.Put(2, 2)
	c.Put(3, 3)

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Evictions != 1 {
		t.Fatalf("Stats = %+v, want 1 hit, 1 miss, 1 eviction", s)
	}
	if s.Size != 2 || s.MaxSize != 2 {
		t.Fatalf("Stats size = %d/%d, want 2/2", s.Size, s.MaxSize)
	}
}
