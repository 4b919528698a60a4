// Package transport defines the collaborator contracts the asset model is
// mutated through: the catalog client, the identity caches consulted for
// admin validation, and the search entry point. The wire protocol behind a
// production client (HTTP, retries, pagination) is out of scope here; the
// package ships an in-memory implementation used by tests and demos.
package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
)

// DeleteMode selects between recoverable and unrecoverable deletion.
type DeleteMode string

const (
	// DeleteSoft archives the asset; it can be restored.
	DeleteSoft DeleteMode = "SOFT"
	// DeletePurge removes the asset permanently.
	DeletePurge DeleteMode = "PURGE"
)

// CustomMetadataHandling controls how custom metadata staged on a save
// request merges with what the catalog already holds.
type CustomMetadataHandling string

const (
	// CMIgnore leaves remote custom metadata untouched.
	CMIgnore CustomMetadataHandling = "IGNORE"
	// CMMerge merges staged attribute values into each named set, leaving
	// other attributes and other sets alone.
	CMMerge CustomMetadataHandling = "MERGE"
	// CMReplaceSets replaces each named set present in the payload in its
	// entirety, leaving sets not named alone.
	CMReplaceSets CustomMetadataHandling = "REPLACE_SETS"
	// CMReplaceAll replaces the asset's full custom metadata wholesale.
	CMReplaceAll CustomMetadataHandling = "REPLACE_ALL"
)

// SaveRequest is one create-or-update submission.
type SaveRequest struct {
	Update *asset.Update

	// ReplaceTags switches tag handling from the per-item semantics carried
	// on the update's tag entries to a full replace of the remote tag set.
	ReplaceTags bool

	// CustomMetadata defaults to CMIgnore.
	CustomMetadata CustomMetadataHandling
}

// MutationResult reports the assets touched by a save or restore.
type MutationResult struct {
	CreatedAssets          []asset.Asset
	UpdatedAssets          []asset.Asset
	PartiallyUpdatedAssets []asset.Asset

	// GUIDAssignments maps client-side placeholder GUIDs to the GUIDs the
	// catalog assigned on create.
	GUIDAssignments map[string]string
}

// AssetByQualifiedName finds the touched asset matching type and
// qualifiedName, searching created, then updated, then partially updated
// assets. Returns nil when the response contains no match.
func (r *MutationResult) AssetByQualifiedName(typeName, qualifiedName string) *asset.Asset {
	for _, group := range [][]asset.Asset{r.CreatedAssets, r.UpdatedAssets, r.PartiallyUpdatedAssets} {
		for i := range group {
			if group[i].TypeName == typeName && group[i].ResolveQualifiedName() == qualifiedName {
				return &group[i]
			}
		}
	}
	return nil
}

// DeletionResult reports the assets removed by a delete.
type DeletionResult struct {
	DeletedAssets []asset.Asset
}

// Client is the catalog transport. Implementations own connection
// management, authentication, and retry policy; the asset model calls
// these five operations and interprets nothing else.
type Client interface {
	// GetByGUID fetches one asset. Returns *NotFoundError when no asset
	// has the GUID.
	GetByGUID(ctx context.Context, guid string) (asset.Asset, error)

	// GetByQualifiedName fetches one asset by type and qualifiedName.
	GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (asset.Asset, error)

	// Save creates the asset when no asset with the same type and
	// qualifiedName exists, and updates it otherwise.
	Save(ctx context.Context, req SaveRequest) (*MutationResult, error)

	// Delete archives (SOFT) or permanently removes (PURGE) an asset.
	Delete(ctx context.Context, guid string, mode DeleteMode) (*DeletionResult, error)

	// Restore returns a soft-deleted asset to ACTIVE.
	Restore(ctx context.Context, u *asset.Update) (*MutationResult, error)
}

// NotFoundError reports a failed lookup, including lookups that found an
// asset of an unexpected concrete type.
type NotFoundError struct {
	TypeName string
	ID       string
	// WrongType is set when an asset was found under the ID but its
	// typeName did not match the requested one.
	WrongType string
}

func (e *NotFoundError) Error() string {
	if e.WrongType != "" {
		return fmt.Sprintf("asset %s is a %s, not a %s", e.ID, e.WrongType, e.TypeName)
	}
	if e.TypeName != "" {
		return fmt.Sprintf("no %s asset found for %s", e.TypeName, e.ID)
	}
	return fmt.Sprintf("no asset found for %s", e.ID)
}

// IsNotFound reports whether err is a lookup failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IdentityCache resolves human-readable identity names to internal IDs and
// back. Implementations are read-through caches owned by the transport;
// both directions return *NotFoundError for unresolvable inputs.
type IdentityCache interface {
	IDForName(ctx context.Context, name string) (string, error)
	NameForID(ctx context.Context, id string) (string, error)
}

// Caches bundles the three identity caches consulted during connection
// admin validation.
type Caches struct {
	Roles  IdentityCache
	Groups IdentityCache
	Users  IdentityCache
}
