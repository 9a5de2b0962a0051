package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_registered_total",
		Help: "Total number of products registered",
	})

	PriceUpsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "price_upserts_total",
		Help: "Total number of price submissions, by insert-vs-update result",
	}, []string{"result"})

	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_searches_total",
		Help: "Total number of product searches",
	})

	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barcode_lookups_total",
		Help: "Total number of barcode lookups, by resolution source",
	}, []string{"source"})

	LookupFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barcode_lookup_failures_total",
		Help: "Total number of failed barcode lookups",
	}, []string{"reason"})

	ProviderRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "provider_request_latency_seconds",
		Help:    "Latency of external product-data provider calls",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
