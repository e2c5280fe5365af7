package ledger

import "github.com/prometheus/client_golang/prometheus"

var transactionsRecorded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_transactions_total",
		Help: "How many ledger transactions have been committed, partitioned by transaction type.",
	},
	[]string{"type"},
)

var storeRetries = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "ledger_store_retries_total",
		Help: "How many ledger operations have been retried after a transient store failure.",
	},
)

// Collectors returns the Prometheus collectors of the ledger.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{transactionsRecorded, storeRetries}
}
