package models

import "github.com/ajharbinger/forensic-omniscient/internal/scoring"

// Company is one set of statement figures submitted for batch screening
type Company struct {
	Name   string                  `json:"name" yaml:"name" binding:"max=200"`
	Ticker string                  `json:"ticker,omitempty" yaml:"ticker" binding:"omitempty,max=20"`
	Inputs scoring.FinancialInputs `json:"inputs" yaml:"inputs"`
}

// DisplayName returns the ticker when no name was given
func (c Company) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Ticker
}

// BatchRequest screens several companies in one call. Each company is
// validated on its own so one bad entry does not sink the batch.
type BatchRequest struct {
	Companies []Company `json:"companies" yaml:"companies" binding:"required,min=1"`
}
