package asset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the simple failure conditions.
var (
	// ErrMissingIdentity is returned when a reference is constructed with an
	// empty GUID or qualifiedName.
	ErrMissingIdentity = errors.New("missing identity: no guid or qualifiedName")

	// ErrMissingTermGUID is returned when a term passed to a remove-by-GUID
	// operation lacks a resolvable GUID.
	ErrMissingTermGUID = errors.New("assigned term has no resolvable guid")

	// ErrNoConnectionAdmin is returned when a connection is created with no
	// admin roles, groups, or users. A connection without an administrator
	// would be unmanageable.
	ErrNoConnectionAdmin = errors.New("connection requires at least one admin role, group, or user")
)

// MissingRequiredFieldError reports required fields that were null or empty
// when trimming an asset to its minimal update form.
type MissingRequiredFieldError struct {
	TypeName string
	Fields   []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.TypeName, strings.Join(e.Fields, ", "))
}

// MissingRelationshipParamError reports that no usable identity could be
// derived when trimming an asset to a reference.
type MissingRelationshipParamError struct {
	TypeName string
	Params   string
}

func (e *MissingRelationshipParamError) Error() string {
	return fmt.Sprintf("%s: at least one of [%s] is required to reference the asset", e.TypeName, e.Params)
}
