package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout outcomes (ok, invalid, failed).
	CheckoutTotal *prometheus.CounterVec
	// DiscountsApplied counts promotional discounts attached to receipts.
	DiscountsApplied prometheus.Counter
	// ReceiptTotal records the distribution of final receipt totals.
	ReceiptTotal prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout requests by outcome.",
		}, []string{"result"})
		DiscountsApplied = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Number of promotional discounts attached to receipts.",
		})
		ReceiptTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_total_amount",
			Help:      "Distribution of final receipt totals.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		})

		mustRegisterCollector(reg, CheckoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutTotal = v
			}
		})
		mustRegisterCollector(reg, DiscountsApplied, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				DiscountsApplied = v
			}
		})
		mustRegisterCollector(reg, ReceiptTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				ReceiptTotal = v
			}
		})
	})
}
