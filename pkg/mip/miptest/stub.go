// Package miptest provides a scripted mip.Backend so unit tests can drive
// every solve-status branch without a real mathematical-programming
// engine.
package miptest

import (
	"context"
	"time"

	"github.com/vroliveira/wavepick/pkg/mip"
)

// Stub returns a canned result (or error) and records what it was asked to
// solve.
type Stub struct {
	Result *mip.Result
	Err    error

	// Assign, when set, is invoked with the model right before returning
	// so the scripted Values can be sized to the actual variable count.
	Assign func(m *mip.Model) []float64

	Calls     int
	LastModel *mip.Model
	LastLimit time.Duration
}

// Solve implements mip.Backend.
func (s *Stub) Solve(_ context.Context, m *mip.Model, timeLimit time.Duration) (*mip.Result, error) {
	s.Calls++
	s.LastModel = m
	s.LastLimit = timeLimit
	if s.Err != nil {
		return nil, s.Err
	}
	res := s.Result
	if res == nil {
		res = &mip.Result{Status: mip.StatusOther}
	}
	if s.Assign != nil {
		copied := *res
		copied.Values = s.Assign(m)
		return &copied, nil
	}
	return res, nil
}
