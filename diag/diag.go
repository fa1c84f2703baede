// Package diag is the error/diagnostic taxonomy shared across the
// kernel, solver, rebuild engine, and persistence layers. Every layer
// that can fail mid-rebuild reports through a Diagnostic rather than
// aborting the whole tree.
package diag

import "fmt"

// SolverKind enumerates the ways a solve attempt can fail to land Ok.
type SolverKind string

const (
	Inconsistent    SolverKind = "Inconsistent"
	DidNotConverge  SolverKind = "DidNotConverge"
	TooManyUnknowns SolverKind = "TooManyUnknowns"
	SolverNotReady  SolverKind = "NotReady"
)

// SolverError wraps a sketch-solve failure.
type SolverError struct {
	Kind    SolverKind
	Message string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver: %s: %s", e.Kind, e.Message)
}

// RebuildKind enumerates the ways a feature-tree rebuild can fail for one
// feature.
type RebuildKind string

const (
	GeomRefBroken  RebuildKind = "GeomRefBroken"
	UpstreamFailed RebuildKind = "UpstreamFailed"
	FeatureNotFound RebuildKind = "FeatureNotFound"
	CycleDetected  RebuildKind = "CycleDetected"
)

// RebuildError wraps a feature-tree rebuild failure, always scoped to one
// feature id.
type RebuildError struct {
	Kind      RebuildKind
	FeatureID string
	Message   string
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf("rebuild: %s on feature %s: %s", e.Kind, e.FeatureID, e.Message)
}

// ValidationError flags a bad command parameter, rejected before any
// tree mutation.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: bad parameter %q: %s", e.Name, e.Reason)
}

// ProjectKind enumerates save/load failure modes.
type ProjectKind string

const (
	ParseFailed       ProjectKind = "ParseFailed"
	UnsupportedSchema ProjectKind = "UnsupportedSchema"
	Corrupted         ProjectKind = "Corrupted"
)

// ProjectError wraps a save/load failure. Save/load errors leave the tree
// unchanged.
type ProjectError struct {
	Kind    ProjectKind
	Message string
}

func (e *ProjectError) Error() string {
	return fmt.Sprintf("project: %s: %s", e.Kind, e.Message)
}

// Severity classifies how a Diagnostic should be surfaced to the shell.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Diagnostic is one human-readable finding attached to a feature after a
// rebuild attempt; a feature with any ERROR diagnostic was implicitly
// suppressed for that rebuild.
type Diagnostic struct {
	Severity  Severity
	FeatureID string
	Message   string
	Details   map[string]interface{}
}
