package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsStarted counts token-creation submissions accepted into the pipeline
	SubmissionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_submissions_started_total",
		Help: "Total token creation submissions started",
	})

	// SubmissionsTerminal counts submissions by final status and the stage they ended in
	SubmissionsTerminal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_submissions_terminal_total",
		Help: "Total token creation submissions reaching a terminal state",
	}, []string{"status", "stage"})

	// LogoUploadDuration observes how long the IPFS pin takes
	LogoUploadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "launchpad_logo_upload_duration_seconds",
		Help:    "Duration of logo uploads to the pinning service",
		Buckets: prometheus.DefBuckets,
	})

	// InsufficientBalance counts preflight rejections due to balance
	InsufficientBalance = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_preflight_insufficient_balance_total",
		Help: "Total submissions rejected by the balance preflight",
	})

	// GasPriceUnavailable counts preflights where the gas price query failed
	GasPriceUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_preflight_gas_price_unavailable_total",
		Help: "Total preflights that proceeded without a gas price",
	})

	// TransactionsSubmitted counts createToken transactions broadcast to the chain
	TransactionsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_transactions_submitted_total",
		Help: "Total createToken transactions broadcast",
	})
)
