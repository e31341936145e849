package retry_test

import (
	"context"
	"fmt"
	"time"

	"github.com/farmora/clientops/retry"
)

func ExampleExecutor_Execute() {
	e := retry.New(retry.Policy{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxJitter:  -1,
	})

	attempts := 0
	v, err := e.Execute(context.Background(), func(ctx context.Context) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, &retry.StatusError{Code: 503, Message: "warming up"}
		}
		return "pest risk: low", nil
	})

	fmt.Println(v, err)
	fmt.Println("attempts:", attempts)
	// Output:
	// pest risk: low <nil>
	// attempts: 3
}

func ExampleExecutor_Execute_nonRetryable() {
	e := retry.New(retry.Policy{BaseDelay: time.Millisecond, MaxJitter: -1})

	attempts := 0
	_, err := e.Execute(context.Background(), func(ctx context.Context) (any, error) {
		attempts++
		return nil, &retry.StatusError{Code: 400, Message: "unknown crop"}
	})

	fmt.Println(err)
	fmt.Println("attempts:", attempts)
	// Output:
	// retry: server status 400: unknown crop
	// attempts: 1
}
