// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and bounded retry logic so that flaky news
// sources degrade the aggregate result set instead of aborting a scrape tick.
//
// The package supports:
//   - Circuit breakers around every source adapter kind
//   - Retry policies with fixed or exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SourceFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchSource()
//	})
//
//	err := retry.WithBackoff(ctx, retry.SourceFetchConfig(), func() error {
//	    return performFetch()
//	})
package resilience
