package dedup_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/farmora/clientops/dedup"
)

func ExampleDeduplicator_Do() {
	d := dedup.New()

	var calls int
	var mu sync.Mutex

	fetchForecast := func(ctx context.Context) (any, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "rain expected thursday", nil
	}

	// Sequential calls for the same key each run their own fetch; only
	// concurrent callers are coalesced.
	v, _, _ := d.Do(context.Background(), "forecast:region-7", fetchForecast)
	fmt.Println(v)
	// Output:
	// rain expected thursday
}
