// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidThreshold is wrapped by every threshold validation failure.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Thresholds are the limits used to decide whether two records are the same
// person (Person*) and, once they are, whether a small difference is worth
// reporting (Report*). Similarities are difflib ratios in [0,1]; dates are
// approximate days.
type Thresholds struct {
	PersonName  float64 `yaml:"person-name-diff"`
	PersonDate  int     `yaml:"person-date-diff"`
	PersonPlace float64 `yaml:"person-place-diff"`
	ReportName  float64 `yaml:"report-name-diff"`
	ReportDate  int     `yaml:"report-date-diff"`

	// IDField selects how start people are looked up, e.g. "xref" or "refn".
	IDField string `yaml:"iditem"`
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PersonName:  0.92,
		PersonDate:  400,
		PersonPlace: 0.90,
		ReportName:  0.99,
		ReportDate:  14,
		IDField:     "xref",
	}
}

// Validate checks every limit against its declared range and returns all
// failures joined.
func (t Thresholds) Validate() error {
	var errs []error

	similarity := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a number between 0 and 1: %w", name, ErrInvalidThreshold))
			return
		}
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s cannot be less than zero: %w", name, ErrInvalidThreshold))
		}
		if v > 1 {
			errs = append(errs, fmt.Errorf("%s cannot be greater than 1: %w", name, ErrInvalidThreshold))
		}
	}
	days := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s cannot be less than zero: %w", name, ErrInvalidThreshold))
		}
	}

	similarity("person-name-diff", t.PersonName)
	days("person-date-diff", t.PersonDate)
	similarity("person-place-diff", t.PersonPlace)
	similarity("report-name-diff", t.ReportName)
	days("report-date-diff", t.ReportDate)

	if t.IDField == "" {
		errs = append(errs, fmt.Errorf("iditem cannot be empty: %w", ErrInvalidThreshold))
	}

	return errors.Join(errs...)
}
