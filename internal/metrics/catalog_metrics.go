package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// ProductsImported is a Prometheus counter for tracking the total number of products imported from spreadsheets.
	ProductsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_imported_total",
		Help: "The total number of products imported from spreadsheets",
	})

	// TemplatesCreated is a Prometheus counter for tracking the total number of label templates created.
	TemplatesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "label_templates_created_total",
		Help: "The total number of label templates created",
	})

	// SheetsExported is a Prometheus counter for tracking the total number of label sheets exported.
	SheetsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "label_sheets_exported_total",
		Help: "The total number of label sheets exported",
	})
)
