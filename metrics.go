// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// metrics is nil when no registerer was configured; all methods are
// nil-safe.
type metrics struct {
	hit, miss, failed prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	lookups := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tzdb",
			Name:      "lookups_total",
			Help:      "Total number of zone lookups by result",
		},
		[]string{"result"},
	)
	if err := reg.Register(lookups); err != nil {
		// several databases may share a registry
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("prometheus.Register: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("prometheus.Register: %w", err)
		}
		lookups = existing
	}
	return &metrics{
		hit:    lookups.WithLabelValues(resultHit),
		miss:   lookups.WithLabelValues(resultMiss),
		failed: lookups.WithLabelValues(resultError),
	}, nil
}

func (m *metrics) observe(ok bool, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.failed.Inc()
	case ok:
		m.hit.Inc()
	default:
		m.miss.Inc()
	}
}
