// Package ml implements the predictive analytics layer: per-category
// spending forecasts, statistical anomaly detection, a note-based category
// classifier and spending-behavior clustering.
//
// Every component recomputes from the store's tabular view on each call.
// Expected shortfalls (too little history, no trained artifact, zero spend)
// are typed errors from the walleterror package, never panics.
package ml

import (
	"github.com/daud-shahbaz/pywallet/internal/config"

	"github.com/sirupsen/logrus"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}
