// # internal/semantic/errors.go
package semantic

import (
	"fmt"
	"strings"

	"syskb/internal/syntax"
)

// Location pinpoints a diagnostic in a source file.
type Location struct {
	File string
	Span syntax.Span
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Span.Start.Line+1, l.Span.Start.Column+1)
}

// SemanticError is a diagnostic produced while populating or checking a
// model. Code returns a stable machine-readable identifier.
//
// Population only emits DuplicateDefinitionError today. The remaining
// kinds cover checking passes (typing, specialization legality,
// constraints) that report through the same interface.
type SemanticError interface {
	error
	Code() string
	Location() *Location
}

func at(loc *Location) string {
	if loc == nil {
		return ""
	}
	return " at " + loc.String()
}

// DuplicateDefinitionError reports a name bound twice in the same scope.
type DuplicateDefinitionError struct {
	Loc   *Location
	Name  string
	First *Location
}

func (e *DuplicateDefinitionError) Location() *Location { return e.Loc }
func (e *DuplicateDefinitionError) Code() string { return "duplicate_definition" }
func (e *DuplicateDefinitionError) Error() string {
	msg := fmt.Sprintf("duplicate definition of %q%s", e.Name, at(e.Loc))
	if e.First != nil {
		msg += fmt.Sprintf(" (first defined at %s)", e.First)
	}
	return msg
}

// UndefinedReferenceError reports a name that resolved to nothing.
type UndefinedReferenceError struct {
	Loc  *Location
	Name string
}

func (e *UndefinedReferenceError) Location() *Location { return e.Loc }
func (e *UndefinedReferenceError) Code() string { return "undefined_reference" }
func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("undefined reference to %q%s", e.Name, at(e.Loc))
}

// TypeMismatchError reports a value whose type does not fit its context.
type TypeMismatchError struct {
	Loc      *Location
	Expected string
	Found    string
	Context  string
}

func (e *TypeMismatchError) Location() *Location { return e.Loc }
func (e *TypeMismatchError) Code() string { return "type_mismatch" }
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in %s: expected %s, found %s%s", e.Context, e.Expected, e.Found, at(e.Loc))
}

// InvalidTypeError reports a typing reference that is not a usable type.
type InvalidTypeError struct {
	Loc      *Location
	TypeName string
	Reason   string
}

func (e *InvalidTypeError) Location() *Location { return e.Loc }
func (e *InvalidTypeError) Code() string { return "invalid_type" }
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %q: %s%s", e.TypeName, e.Reason, at(e.Loc))
}

// InvalidSpecializationError reports an ill-formed specialization.
type InvalidSpecializationError struct {
	Loc    *Location
	Child  string
	Parent string
	Reason string
}

func (e *InvalidSpecializationError) Location() *Location { return e.Loc }
func (e *InvalidSpecializationError) Code() string { return "invalid_specialization" }
func (e *InvalidSpecializationError) Error() string {
	return fmt.Sprintf("%q cannot specialize %q: %s%s", e.Child, e.Parent, e.Reason, at(e.Loc))
}

// InvalidRedefinitionError reports an ill-formed redefinition.
type InvalidRedefinitionError struct {
	Loc       *Location
	Feature   string
	Redefined string
	Reason    string
}

func (e *InvalidRedefinitionError) Location() *Location { return e.Loc }
func (e *InvalidRedefinitionError) Code() string { return "invalid_redefinition" }
func (e *InvalidRedefinitionError) Error() string {
	return fmt.Sprintf("%q cannot redefine %q: %s%s", e.Feature, e.Redefined, e.Reason, at(e.Loc))
}

// InvalidSubsettingError reports an ill-formed subsetting.
type InvalidSubsettingError struct {
	Loc      *Location
	Feature  string
	SubsetOf string
	Reason   string
}

func (e *InvalidSubsettingError) Location() *Location { return e.Loc }
func (e *InvalidSubsettingError) Code() string { return "invalid_subsetting" }
func (e *InvalidSubsettingError) Error() string {
	return fmt.Sprintf("%q cannot subset %q: %s%s", e.Feature, e.SubsetOf, e.Reason, at(e.Loc))
}

// ConstraintViolationError reports a violated model constraint.
type ConstraintViolationError struct {
	Loc        *Location
	Constraint string
	Reason     string
}

func (e *ConstraintViolationError) Location() *Location { return e.Loc }
func (e *ConstraintViolationError) Code() string { return "constraint_violation" }
func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint %q violated: %s%s", e.Constraint, e.Reason, at(e.Loc))
}

// InvalidFeatureContextError reports a feature declared where its kind is
// not allowed.
type InvalidFeatureContextError struct {
	Loc     *Location
	Feature string
	Context string
}

func (e *InvalidFeatureContextError) Location() *Location { return e.Loc }
func (e *InvalidFeatureContextError) Code() string { return "invalid_feature_context" }
func (e *InvalidFeatureContextError) Error() string {
	return fmt.Sprintf("feature %q is not allowed in %s%s", e.Feature, e.Context, at(e.Loc))
}

// AbstractInstantiationError reports a usage of an abstract definition.
type AbstractInstantiationError struct {
	Loc     *Location
	Element string
}

func (e *AbstractInstantiationError) Location() *Location { return e.Loc }
func (e *AbstractInstantiationError) Code() string { return "abstract_instantiation" }
func (e *AbstractInstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate abstract element %q%s", e.Element, at(e.Loc))
}

// InvalidImportError reports an import whose path resolves to nothing.
type InvalidImportError struct {
	Loc    *Location
	Path   string
	Reason string
}

func (e *InvalidImportError) Location() *Location { return e.Loc }
func (e *InvalidImportError) Code() string { return "invalid_import" }
func (e *InvalidImportError) Error() string {
	return fmt.Sprintf("invalid import %q: %s%s", e.Path, e.Reason, at(e.Loc))
}

// CircularDependencyError reports an import cycle between files.
type CircularDependencyError struct {
	Loc   *Location
	Cycle []string
}

func (e *CircularDependencyError) Location() *Location { return e.Loc }
func (e *CircularDependencyError) Code() string { return "circular_dependency" }
func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Cycle, " -> "))
}

// WithLocation returns a Location helper for error construction.
func WithLocation(file string, span *syntax.Span) *Location {
	if span == nil {
		return &Location{File: file}
	}
	return &Location{File: file, Span: *span}
}
