// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package tzdb

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Database.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	validateIndex bool
	registerer    prometheus.Registerer
	resolver      func() string
}

func newOptions(opts []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolver: LocalZoneID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets an optional logger.  If not provided, no logging output
// will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIndexValidation makes Open check that index ids are sorted and
// unique, failing with indexfile.ErrUnsorted or indexfile.ErrDuplicateID
// otherwise.  Without it an out-of-order index is simply trusted.
func WithIndexValidation() Option {
	return func(o *options) {
		o.validateIndex = true
	}
}

// WithMetricsRegisterer registers lookup counters with reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithSystemDefaultResolver replaces LocalZoneID as the source of the
// system default zone id.
func WithSystemDefaultResolver(resolve func() string) Option {
	return func(o *options) {
		if resolve != nil {
			o.resolver = resolve
		}
	}
}
