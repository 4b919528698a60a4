// Package asset defines the typed-asset value model for a metadata catalog:
// identity and references, attribute patches, and the per-item mutation
// semantics (REPLACE/APPEND/REMOVE) that catalog operations are built on.
// Values in this package are plain data; all I/O happens through the
// transport collaborator.
package asset

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Status is the lifecycle state of an asset in the catalog.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
	StatusPurged  Status = "PURGED"
)

// CertificateStatus indicates the certification level of an asset.
type CertificateStatus string

const (
	CertificateVerified   CertificateStatus = "VERIFIED"
	CertificateDraft      CertificateStatus = "DRAFT"
	CertificateDeprecated CertificateStatus = "DEPRECATED"
)

// AnnouncementType categorizes an announcement attached to an asset.
type AnnouncementType string

const (
	AnnouncementInformation AnnouncementType = "information"
	AnnouncementWarning     AnnouncementType = "warning"
	AnnouncementIssue       AnnouncementType = "issue"
)

// UniqueAttributes is the identity envelope carried by assets and references
// that are addressed by qualifiedName rather than GUID.
type UniqueAttributes struct {
	QualifiedName string `json:"qualifiedName,omitempty"`
}

// Asset is the universal catalog entity. Type-specific attributes live in
// the Attributes map; the per-type schema (permitted attributes, required
// fields) is held by the typedef registry, keyed by TypeName.
type Asset struct {
	TypeName         string           `json:"typeName"`
	GUID             string           `json:"guid,omitempty"`
	QualifiedName    string           `json:"qualifiedName,omitempty"`
	UniqueAttributes UniqueAttributes `json:"uniqueAttributes,omitempty"`

	Name            string `json:"name,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	Description     string `json:"description,omitempty"`
	UserDescription string `json:"userDescription,omitempty"`

	CertificateStatus        CertificateStatus `json:"certificateStatus,omitempty"`
	CertificateStatusMessage string            `json:"certificateStatusMessage,omitempty"`
	CertificateUpdatedBy     string            `json:"certificateUpdatedBy,omitempty"`
	CertificateUpdatedAt     int64             `json:"certificateUpdatedAt,omitempty"`

	AnnouncementType      AnnouncementType `json:"announcementType,omitempty"`
	AnnouncementTitle     string           `json:"announcementTitle,omitempty"`
	AnnouncementMessage   string           `json:"announcementMessage,omitempty"`
	AnnouncementUpdatedBy string           `json:"announcementUpdatedBy,omitempty"`
	AnnouncementUpdatedAt int64            `json:"announcementUpdatedAt,omitempty"`

	OwnerUsers  []string `json:"ownerUsers,omitempty"`
	OwnerGroups []string `json:"ownerGroups,omitempty"`
	AdminUsers  []string `json:"adminUsers,omitempty"`
	AdminGroups []string `json:"adminGroups,omitempty"`
	AdminRoles  []string `json:"adminRoles,omitempty"`

	Tags  []Tag       `json:"classifications,omitempty"`
	Terms []Reference `json:"meanings,omitempty"`

	// CustomMetadata maps a custom-metadata set name to its attribute values.
	// Each named set is independently mutable.
	CustomMetadata map[string]map[string]any `json:"customMetadata,omitempty"`

	// Attributes holds type-specific attributes beyond the common set above.
	// Reference-valued entries express relationships to other assets.
	Attributes map[string]any `json:"attributes,omitempty"`

	Status     Status `json:"status,omitempty"`
	CreatedBy  string `json:"createdBy,omitempty"`
	UpdatedBy  string `json:"updatedBy,omitempty"`
	CreateTime int64  `json:"createTime,omitempty"`
	UpdateTime int64  `json:"updateTime,omitempty"`

	// Populated only when the asset was retrieved through a lineage
	// traversal. Never sent by the client.
	Depth               int         `json:"depth,omitempty"`
	ImmediateUpstream   []Reference `json:"immediateUpstream,omitempty"`
	ImmediateDownstream []Reference `json:"immediateDownstream,omitempty"`
}

// ResolveQualifiedName returns the asset's qualifiedName, falling back to
// the one nested in its unique-attributes envelope. Returns "" when neither
// is set.
func (a Asset) ResolveQualifiedName() string {
	if a.QualifiedName != "" {
		return a.QualifiedName
	}
	return a.UniqueAttributes.QualifiedName
}

// HasIdentity reports whether the asset carries at least one resolvable
// identity (GUID or qualifiedName).
func (a Asset) HasIdentity() bool {
	return a.GUID != "" || a.ResolveQualifiedName() != ""
}

// IsActive reports whether the asset is in the ACTIVE state.
func (a Asset) IsActive() bool {
	return a.Status == StatusActive
}

// Attr returns a type-specific attribute by name.
func (a Asset) Attr(name string) (any, bool) {
	v, ok := a.Attributes[name]
	return v, ok
}

// StringAttr returns a type-specific string attribute, or "" if unset or
// not a string.
func (a Asset) StringAttr(name string) string {
	if s, ok := a.Attributes[name].(string); ok {
		return s
	}
	return ""
}

// SetAttr sets a type-specific attribute, allocating the map on first use.
func (a *Asset) SetAttr(name string, value any) {
	if a.Attributes == nil {
		a.Attributes = make(map[string]any)
	}
	a.Attributes[name] = value
}

// Field resolves an attribute by its wire name, covering both the common
// fields promoted to struct fields and the type-specific attribute map.
// The bool result reports whether the field carries a non-empty value.
func (a Asset) Field(name string) (any, bool) {
	switch name {
	case FieldQualifiedName:
		return a.QualifiedName, a.QualifiedName != ""
	case FieldName:
		return a.Name, a.Name != ""
	case FieldDisplayName:
		return a.DisplayName, a.DisplayName != ""
	case FieldDescription:
		return a.Description, a.Description != ""
	case FieldUserDescription:
		return a.UserDescription, a.UserDescription != ""
	}
	v, ok := a.Attributes[name]
	if !ok {
		return nil, false
	}
	if s, isString := v.(string); isString && s == "" {
		return s, false
	}
	return v, true
}

// SetField sets an attribute by its wire name, mirroring Field.
func (a *Asset) SetField(name string, value any) {
	switch name {
	case FieldQualifiedName:
		a.QualifiedName, _ = value.(string)
	case FieldName:
		a.Name, _ = value.(string)
	case FieldDisplayName:
		a.DisplayName, _ = value.(string)
	case FieldDescription:
		a.Description, _ = value.(string)
	case FieldUserDescription:
		a.UserDescription, _ = value.(string)
	default:
		a.SetAttr(name, value)
	}
}

// Normalize sorts and deduplicates the asset's string sets and tag list so
// that serialization is deterministic and comparisons are idempotent.
func (a *Asset) Normalize() {
	a.OwnerUsers = NormalizeSet(a.OwnerUsers)
	a.OwnerGroups = NormalizeSet(a.OwnerGroups)
	a.AdminUsers = NormalizeSet(a.AdminUsers)
	a.AdminGroups = NormalizeSet(a.AdminGroups)
	a.AdminRoles = NormalizeSet(a.AdminRoles)
	a.Tags = NormalizeTags(a.Tags)
}

// placeholderSeq makes placeholder GUIDs distinct within a process even when
// generated in the same nanosecond.
var placeholderSeq atomic.Int64

// NewPlaceholderGUID returns a client-side placeholder GUID for a
// not-yet-created asset. Placeholders are negative numeric strings; the
// server replaces them on create and reports the mapping in the mutation
// result's guid assignments.
func NewPlaceholderGUID() string {
	n := time.Now().UnixNano() + placeholderSeq.Add(1)
	return "-" + strconv.FormatInt(n, 10)
}

// IsPlaceholderGUID reports whether guid is a client-side placeholder.
func IsPlaceholderGUID(guid string) bool {
	return strings.HasPrefix(guid, "-")
}
