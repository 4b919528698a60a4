// Package serde implements the wire codec for assets: polymorphic JSON
// dispatched by the typeName discriminator. Encoding honors the attribute
// patch, emitting explicit nulls for cleared fields and omitting unset
// fields entirely; decoding verifies the typeName against the typedef
// registry and converts attributes to their declared kinds.
package serde

import (
	"encoding/json"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
)

// envelope is the wire shape of one asset.
type envelope struct {
	TypeName               string                     `json:"typeName"`
	GUID                   string                     `json:"guid,omitempty"`
	UniqueAttributes       *asset.UniqueAttributes    `json:"uniqueAttributes,omitempty"`
	Status                 asset.Status               `json:"status,omitempty"`
	CreatedBy              string                     `json:"createdBy,omitempty"`
	UpdatedBy              string                     `json:"updatedBy,omitempty"`
	CreateTime             int64                      `json:"createTime,omitempty"`
	UpdateTime             int64                      `json:"updateTime,omitempty"`
	Attributes             map[string]any            `json:"attributes,omitempty"`
	RelationshipAttributes map[string]any            `json:"relationshipAttributes,omitempty"`
	Classifications        []asset.Tag               `json:"classifications,omitempty"`
	BusinessAttributes     map[string]map[string]any `json:"businessAttributes,omitempty"`
}

// Encode serializes an update request: the minimal asset plus its patch.
// Fields named in the patch clear-set are emitted as explicit null, the
// wire convention for "remove this attribute server-side". Everything
// unset is omitted and left untouched by the server.
func Encode(u *asset.Update) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("encode: nil update")
	}
	return EncodeAsset(u.Asset, u.Patch)
}

// EncodeAsset serializes one asset with an optional patch.
func EncodeAsset(a asset.Asset, p *asset.Patch) ([]byte, error) {
	if a.TypeName == "" {
		return nil, fmt.Errorf("encode: asset has no typeName")
	}

	env := envelope{
		TypeName:               a.TypeName,
		GUID:                   a.GUID,
		Status:                 a.Status,
		Attributes:             make(map[string]any),
		RelationshipAttributes: make(map[string]any),
		Classifications:        a.Tags,
		BusinessAttributes:     a.CustomMetadata,
	}
	if qn := a.UniqueAttributes.QualifiedName; qn != "" {
		env.UniqueAttributes = &asset.UniqueAttributes{QualifiedName: qn}
	}

	putString := func(name, v string) {
		if v != "" {
			env.Attributes[name] = v
		}
	}
	putString(asset.FieldQualifiedName, a.QualifiedName)
	putString(asset.FieldName, a.Name)
	putString(asset.FieldDisplayName, a.DisplayName)
	putString(asset.FieldDescription, a.Description)
	putString(asset.FieldUserDescription, a.UserDescription)
	putString(asset.FieldCertificateStatus, string(a.CertificateStatus))
	putString(asset.FieldCertificateStatusMessage, a.CertificateStatusMessage)
	putString(asset.FieldAnnouncementType, string(a.AnnouncementType))
	putString(asset.FieldAnnouncementTitle, a.AnnouncementTitle)
	putString(asset.FieldAnnouncementMessage, a.AnnouncementMessage)

	putSet := func(name string, v []string) {
		if len(v) > 0 {
			env.Attributes[name] = v
		}
	}
	putSet(asset.FieldOwnerUsers, a.OwnerUsers)
	putSet(asset.FieldOwnerGroups, a.OwnerGroups)
	putSet(asset.FieldAdminUsers, a.AdminUsers)
	putSet(asset.FieldAdminGroups, a.AdminGroups)
	putSet(asset.FieldAdminRoles, a.AdminRoles)

	for name, v := range a.Attributes {
		switch v.(type) {
		case asset.Reference, []asset.Reference, *asset.Reference:
			env.RelationshipAttributes[name] = v
		default:
			env.Attributes[name] = v
		}
	}
	if len(a.Terms) > 0 {
		env.RelationshipAttributes[asset.FieldTerms] = a.Terms
	}

	if p != nil {
		for _, name := range p.ClearList() {
			// A cleared field must not also carry a value.
			delete(env.RelationshipAttributes, name)
			env.Attributes[name] = nil
		}
	}

	if len(env.RelationshipAttributes) == 0 {
		env.RelationshipAttributes = nil
	}
	return json.Marshal(env)
}

// Decode parses one asset envelope, dispatching attribute conversion by the
// typeName discriminator. Attributes not declared by the type's schema are
// retained in the attribute map as raw values.
func Decode(data []byte) (asset.Asset, error) {
	var env struct {
		TypeName               string                     `json:"typeName"`
		GUID                   string                     `json:"guid"`
		UniqueAttributes       asset.UniqueAttributes     `json:"uniqueAttributes"`
		Status                 asset.Status               `json:"status"`
		CreatedBy              string                     `json:"createdBy"`
		UpdatedBy              string                     `json:"updatedBy"`
		CreateTime             int64                      `json:"createTime"`
		UpdateTime             int64                      `json:"updateTime"`
		Attributes             map[string]json.RawMessage `json:"attributes"`
		RelationshipAttributes map[string]json.RawMessage `json:"relationshipAttributes"`
		Classifications        []asset.Tag                `json:"classifications"`
		BusinessAttributes     map[string]map[string]any  `json:"businessAttributes"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return asset.Asset{}, fmt.Errorf("decode asset: %w", err)
	}
	def, err := typedef.Lookup(env.TypeName)
	if err != nil {
		return asset.Asset{}, err
	}

	a := asset.Asset{
		TypeName:         env.TypeName,
		GUID:             env.GUID,
		UniqueAttributes: env.UniqueAttributes,
		Status:           env.Status,
		CreatedBy:        env.CreatedBy,
		UpdatedBy:        env.UpdatedBy,
		CreateTime:       env.CreateTime,
		UpdateTime:       env.UpdateTime,
		Tags:             env.Classifications,
		CustomMetadata:   env.BusinessAttributes,
	}

	for name, raw := range env.Attributes {
		if string(raw) == "null" {
			continue
		}
		if decodeCoreAttr(&a, name, raw) {
			continue
		}
		v, err := decodeTyped(def, name, raw)
		if err != nil {
			return asset.Asset{}, fmt.Errorf("decode %s.%s: %w", env.TypeName, name, err)
		}
		a.SetAttr(name, v)
	}

	for name, raw := range env.RelationshipAttributes {
		if string(raw) == "null" {
			continue
		}
		refs, single, err := decodeRefs(raw)
		if err != nil {
			return asset.Asset{}, fmt.Errorf("decode %s.%s: %w", env.TypeName, name, err)
		}
		if name == asset.FieldTerms {
			a.Terms = refs
			continue
		}
		if single {
			a.SetAttr(name, refs[0])
		} else {
			a.SetAttr(name, refs)
		}
	}

	return a, nil
}

// decodeCoreAttr maps the common attributes onto the asset's struct fields.
func decodeCoreAttr(a *asset.Asset, name string, raw json.RawMessage) bool {
	str := func(dst *string) bool {
		return json.Unmarshal(raw, dst) == nil
	}
	set := func(dst *[]string) bool {
		return json.Unmarshal(raw, dst) == nil
	}
	switch name {
	case asset.FieldQualifiedName:
		return str(&a.QualifiedName)
	case asset.FieldName:
		return str(&a.Name)
	case asset.FieldDisplayName:
		return str(&a.DisplayName)
	case asset.FieldDescription:
		return str(&a.Description)
	case asset.FieldUserDescription:
		return str(&a.UserDescription)
	case asset.FieldCertificateStatus:
		var s string
		if !str(&s) {
			return false
		}
		a.CertificateStatus = asset.CertificateStatus(s)
		return true
	case asset.FieldCertificateStatusMessage:
		return str(&a.CertificateStatusMessage)
	case asset.FieldAnnouncementType:
		var s string
		if !str(&s) {
			return false
		}
		a.AnnouncementType = asset.AnnouncementType(s)
		return true
	case asset.FieldAnnouncementTitle:
		return str(&a.AnnouncementTitle)
	case asset.FieldAnnouncementMessage:
		return str(&a.AnnouncementMessage)
	case asset.FieldOwnerUsers:
		return set(&a.OwnerUsers)
	case asset.FieldOwnerGroups:
		return set(&a.OwnerGroups)
	case asset.FieldAdminUsers:
		return set(&a.AdminUsers)
	case asset.FieldAdminGroups:
		return set(&a.AdminGroups)
	case asset.FieldAdminRoles:
		return set(&a.AdminRoles)
	}
	return false
}

// decodeTyped converts a raw attribute to the Go type declared by the
// schema. Undeclared attributes decode as generic values so round-trips
// never drop data.
func decodeTyped(def typedef.TypeDef, name string, raw json.RawMessage) (any, error) {
	attr, ok := def.Attribute(name)
	if !ok {
		var v any
		err := json.Unmarshal(raw, &v)
		return v, err
	}
	switch attr.Kind {
	case typedef.KindString:
		var v string
		return v, unmarshalInto(raw, &v)
	case typedef.KindBool:
		var v bool
		return v, unmarshalInto(raw, &v)
	case typedef.KindInt:
		var v int
		return v, unmarshalInto(raw, &v)
	case typedef.KindLong, typedef.KindTimestamp:
		var v int64
		return v, unmarshalInto(raw, &v)
	case typedef.KindDouble:
		var v float64
		return v, unmarshalInto(raw, &v)
	case typedef.KindStringSet:
		var v []string
		return v, unmarshalInto(raw, &v)
	case typedef.KindRefSet:
		refs, single, err := decodeRefs(raw)
		if err != nil {
			return nil, err
		}
		if single {
			return refs[0], nil
		}
		return refs, nil
	default: // KindMap, KindStruct
		var v map[string]any
		return v, unmarshalInto(raw, &v)
	}
}

func unmarshalInto(raw json.RawMessage, dst any) error {
	return json.Unmarshal(raw, dst)
}

// decodeRefs decodes either a single reference object or an array of them.
func decodeRefs(raw json.RawMessage) (refs []asset.Reference, single bool, err error) {
	trimmed := firstByte(raw)
	if trimmed == '[' {
		err = json.Unmarshal(raw, &refs)
		return refs, false, err
	}
	var ref asset.Reference
	if err = json.Unmarshal(raw, &ref); err != nil {
		return nil, false, err
	}
	return []asset.Reference{ref}, true, nil
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
