// Package resilience keeps the two failure-handling building blocks the
// application uses against flaky dependencies: bounded retries for outbound
// HTTP lookups and circuit breakers in front of database access.
//
//	retryConfig := retry.DefaultConfig()
//	err := retry.WithBackoff(ctx, retryConfig, func() error {
//	    return performOperation()
//	})
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := dcb.QueryContext(ctx, query, args...)
package resilience
