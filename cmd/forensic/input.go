package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "github.com/ajharbinger/forensic-omniscient/internal/errors"
	"github.com/ajharbinger/forensic-omniscient/internal/models"
	"github.com/ajharbinger/forensic-omniscient/internal/scoring"
)

// decodeInputs reads statement figures from YAML. JSON documents are valid
// YAML and decode the same way. Unknown keys are rejected so a misspelt
// field cannot silently default to zero.
func decodeInputs(r io.Reader) (scoring.FinancialInputs, error) {
	var in scoring.FinancialInputs

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, fmt.Errorf("inputs file is empty")
		}
		return in, fmt.Errorf("failed to parse inputs: %w", err)
	}
	return in, nil
}

// decodeBatch reads a companies list from YAML or JSON
func decodeBatch(r io.Reader) (models.BatchRequest, error) {
	var req models.BatchRequest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, fmt.Errorf("companies file is empty")
		}
		return req, fmt.Errorf("failed to parse companies: %w", err)
	}
	return req, nil
}

// describeError flattens an AppError into message and details for the
// terminal
func describeError(err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return err
	}
	if appErr.Details != "" {
		return fmt.Errorf("%s: %s", appErr.Message, appErr.Details)
	}
	return errors.New(appErr.Message)
}
