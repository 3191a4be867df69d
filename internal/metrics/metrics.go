package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters surfaced on the health endpoint.
var (
	RequestsServed Counter
	OrdersCreated  Counter
	OrdersCanceled Counter
)

// Snapshot returns current counter values for serialization.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"requestsServed": RequestsServed.Load(),
		"ordersCreated":  OrdersCreated.Load(),
		"ordersCanceled": OrdersCanceled.Load(),
	}
}

// CountRequests bumps RequestsServed for every request passing through.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RequestsServed.Inc()
		next.ServeHTTP(w, r)
	})
}
