package cache

import (
	"strconv"
	"testing"
)

func BenchmarkCache_Set(b *testing.B) {
	c := New(Config{MaxSize: 1000})
	defer c.StopCleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(strconv.Itoa(i%1000), i, 0)
	}
}

func BenchmarkCache_Get(b *testing.B) {
	c := New(Config{MaxSize: 1000})
	defer c.StopCleanup()

	for i := 0; i < 1000; i++ {
		c.Set(strconv.Itoa(i), i, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(strconv.Itoa(i % 1000))
	}
}

func BenchmarkCache_SetWithEviction(b *testing.B) {
	c := New(Config{MaxSize: 100})
	defer c.StopCleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(strconv.Itoa(i), i, 0)
	}
}

func BenchmarkCache_GetParallel(b *testing.B) {
	c := New(Config{MaxSize: 1000})
	defer c.StopCleanup()

	for i := 0; i < 1000; i++ {
		c.Set(strconv.Itoa(i), i, 0)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(strconv.Itoa(i % 1000))
			i++
		}
	})
}
