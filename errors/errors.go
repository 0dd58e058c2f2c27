// Package errors defines the error kinds raised by the class tree engine,
// from reference parsing and resolution through class inclusion and node
// rendering.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorReasonCode identifies the kind of failure programmatically.
type ErrorReasonCode string

const (
	ReasonCodeParseError ErrorReasonCode = "parse_error"
	ReasonCodeLookup     ErrorReasonCode = "lookup_error"
	ReasonCodeLoop       ErrorReasonCode = "loop_error"
	ReasonCodeDepth      ErrorReasonCode = "depth_error"
	ReasonCodeMerge      ErrorReasonCode = "merge_error"
	ReasonCodeConst      ErrorReasonCode = "const_error"
	ReasonCodeLoad       ErrorReasonCode = "load_error"
)

func deriveErrorsLabel(errorCount int) string {
	if errorCount == 1 {
		return "error"
	}

	return "errors"
}

// ParseError is raised when a reference string does not match the
// `${...}` grammar, or leaves unconsumed input.
type ParseError struct {
	ReasonCode ErrorReasonCode
	Input      string
	Summary    string
	Position   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"parse error at position %d in %q: %s",
		e.Position,
		e.Input,
		e.Summary,
	)
}

// NewParseError builds a ParseError with ReasonCodeParseError set.
func NewParseError(input, summary string, position int) *ParseError {
	return &ParseError{
		ReasonCode: ReasonCodeParseError,
		Input:      input,
		Summary:    summary,
		Position:   position,
	}
}

// LookupError is raised when a reference path segment does not resolve
// to a value in the root mapping.
type LookupError struct {
	ReasonCode ErrorReasonCode
	Path       string
	Err        error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reference %q not found: %s", e.Path, e.Err.Error())
	}
	return fmt.Sprintf("reference %q not found", e.Path)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError builds a LookupError with ReasonCodeLookup set.
func NewLookupError(path string) *LookupError {
	return &LookupError{ReasonCode: ReasonCodeLookup, Path: path}
}

// LoopError is raised when resolving a reference would revisit a path
// already being resolved.
type LoopError struct {
	ReasonCode ErrorReasonCode
	Paths      []string
}

func (e *LoopError) Error() string {
	sorted := append([]string(nil), e.Paths...)
	sort.Strings(sorted)
	return fmt.Sprintf("reference loop with reference paths [%s]", strings.Join(sorted, ", "))
}

// NewLoopError builds a LoopError from the set of in-flight paths.
func NewLoopError(paths []string) *LoopError {
	return &LoopError{ReasonCode: ReasonCodeLoop, Paths: paths}
}

// DepthError is raised when the resolver's recursion cap is exceeded.
type DepthError struct {
	ReasonCode ErrorReasonCode
	Cap        int
	Seen       []string
}

func (e *DepthError) Error() string {
	sorted := append([]string(nil), e.Seen...)
	sort.Strings(sorted)
	return fmt.Sprintf(
		"token resolution exceeded recursion depth of %d, currently resolving [%s]",
		e.Cap,
		strings.Join(sorted, ", "),
	)
}

// NewDepthError builds a DepthError with the configured cap and currently
// in-flight paths.
func NewDepthError(cap int, seen []string) *DepthError {
	return &DepthError{ReasonCode: ReasonCodeDepth, Cap: cap, Seen: seen}
}

// MergeError is raised when flattening a ValueList encounters
// incompatible layer kinds (scalar over container, mismatched
// containers, ...).
type MergeError struct {
	ReasonCode ErrorReasonCode
	Summary    string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge error: %s", e.Summary)
}

// NewMergeError builds a MergeError with the given human summary.
func NewMergeError(summary string) *MergeError {
	return &MergeError{ReasonCode: ReasonCodeMerge, Summary: summary}
}

// ConstError is raised when a merge or insert attempts to overwrite a
// key marked constant.
type ConstError struct {
	ReasonCode ErrorReasonCode
	Key        string
}

func (e *ConstError) Error() string {
	return fmt.Sprintf("cannot overwrite constant key %s", e.Key)
}

// NewConstError builds a ConstError for the given key.
func NewConstError(key string) *ConstError {
	return &ConstError{ReasonCode: ReasonCodeConst, Key: key}
}

// LoadError is returned by inventory.RenderAll when one or more nodes
// fail to render, with each node's failure in ChildErrors. YAML syntax
// errors and missing node or class files are not reported as LoadError:
// they surface as the YAML decoder's own error, inventory.NodeNotFoundError
// or walker.ClassNotFoundError, wrapped in a NodeRenderError.
type LoadError struct {
	ReasonCode  ErrorReasonCode
	Err         error
	ChildErrors []error
}

func (e *LoadError) Error() string {
	childErrCount := len(e.ChildErrors)
	if childErrCount == 0 {
		return fmt.Sprintf("load error: %s", e.Err.Error())
	}
	errorsLabel := deriveErrorsLabel(childErrCount)
	return fmt.Sprintf("load error (%d child %s): %s", childErrCount, errorsLabel, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError builds a LoadError, aggregating any child errors already
// gathered (for example, several missing classes reported together).
func NewLoadError(err error, childErrors ...error) *LoadError {
	return &LoadError{ReasonCode: ReasonCodeLoad, Err: err, ChildErrors: childErrors}
}

// NodeRenderError wraps any of the above with the node name that was
// being rendered when the failure occurred, mirroring the teacher's
// child-blueprint-path wrapping idiom.
type NodeRenderError struct {
	NodeName string
	Err      error
}

func (e *NodeRenderError) Error() string {
	return fmt.Sprintf("render error for node %q: %s", e.NodeName, e.Err.Error())
}

func (e *NodeRenderError) Unwrap() error {
	return e.Err
}

// NewNodeRenderError wraps err with the node name being rendered.
func NewNodeRenderError(nodeName string, err error) *NodeRenderError {
	return &NodeRenderError{NodeName: nodeName, Err: err}
}
