package transport

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/txn2/catalog-go/pkg/asset"
)

// Memory is an in-memory catalog implementing Client and Searcher, with
// its own identity caches. It applies the same merge semantics a remote
// catalog would, which makes it the reference backend for tests and demos.
type Memory struct {
	mu     sync.RWMutex
	assets map[string]asset.Asset
	byQN   map[string]string

	actor string

	roles  *MemoryCache
	groups *MemoryCache
	users  *MemoryCache
}

// MemoryOption configures the in-memory catalog.
type MemoryOption func(*Memory)

// WithActor sets the username recorded as creator/updater on mutations.
func WithActor(name string) MemoryOption {
	return func(m *Memory) { m.actor = name }
}

// NewMemory returns an empty in-memory catalog.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		assets: make(map[string]asset.Asset),
		byQN:   make(map[string]string),
		actor:  "service-account",
		roles:  NewMemoryCache("role"),
		groups: NewMemoryCache("group"),
		users:  NewMemoryCache("user"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Caches returns the catalog's identity caches.
func (m *Memory) Caches() Caches {
	return Caches{Roles: m.roles, Groups: m.groups, Users: m.users}
}

// RegisterRole adds a resolvable role identity.
func (m *Memory) RegisterRole(name, id string) { m.roles.Register(name, id) }

// RegisterGroup adds a resolvable group identity.
func (m *Memory) RegisterGroup(name, id string) { m.groups.Register(name, id) }

// RegisterUser adds a resolvable user identity.
func (m *Memory) RegisterUser(name, id string) { m.users.Register(name, id) }

// Seed stores assets directly, assigning GUIDs and ACTIVE status. Returns
// the assigned GUIDs in input order.
func (m *Memory) Seed(assets ...asset.Asset) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UnixMilli()
	guids := make([]string, 0, len(assets))
	for _, a := range assets {
		a = cloneAsset(a)
		a.GUID = uuid.NewString()
		a.Status = asset.StatusActive
		a.CreatedBy, a.UpdatedBy = m.actor, m.actor
		a.CreateTime, a.UpdateTime = now, now
		a.Normalize()
		m.assets[a.GUID] = a
		m.byQN[qnKey(a.TypeName, a.ResolveQualifiedName())] = a.GUID
		guids = append(guids, a.GUID)
	}
	return guids
}

// GetByGUID implements Client.
func (m *Memory) GetByGUID(_ context.Context, guid string) (asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[guid]
	if !ok {
		return asset.Asset{}, &NotFoundError{ID: guid}
	}
	return cloneAsset(a), nil
}

// GetByQualifiedName implements Client.
func (m *Memory) GetByQualifiedName(_ context.Context, typeName, qualifiedName string) (asset.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	guid, ok := m.byQN[qnKey(typeName, qualifiedName)]
	if !ok {
		return asset.Asset{}, &NotFoundError{TypeName: typeName, ID: qualifiedName}
	}
	return cloneAsset(m.assets[guid]), nil
}

// Save implements Client: create when no asset has the same type and
// qualifiedName, update otherwise.
func (m *Memory) Save(_ context.Context, req SaveRequest) (*MutationResult, error) {
	if req.Update == nil {
		return nil, fmt.Errorf("save: nil update")
	}
	in := req.Update.Asset
	qn := in.ResolveQualifiedName()
	if in.TypeName == "" || qn == "" {
		return nil, fmt.Errorf("save: asset requires typeName and qualifiedName")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UnixMilli()
	guid, exists := m.byQN[qnKey(in.TypeName, qn)]
	if !exists {
		return m.create(in, req, now)
	}

	stored := m.assets[guid]
	m.applyCoreFields(&stored, in)
	if req.Update.Patch != nil {
		for _, name := range req.Update.Patch.ClearList() {
			clearField(&stored, name)
		}
	}
	for k, v := range in.Attributes {
		stored.SetAttr(k, v)
	}
	stored.Tags = mergeTags(stored.Tags, in.Tags, req.ReplaceTags)
	stored.Terms = mergeTerms(stored.Terms, in.Terms)
	stored.CustomMetadata = mergeCustomMetadata(stored.CustomMetadata, in.CustomMetadata, req.CustomMetadata)
	stored.UpdatedBy = m.actor
	stored.UpdateTime = now
	stored.Normalize()

	m.assets[guid] = stored
	return &MutationResult{UpdatedAssets: []asset.Asset{cloneAsset(stored)}}, nil
}

func (m *Memory) create(in asset.Asset, req SaveRequest, now int64) (*MutationResult, error) {
	stored := cloneAsset(in)
	placeholder := stored.GUID
	stored.GUID = uuid.NewString()
	stored.QualifiedName = in.ResolveQualifiedName()
	stored.UniqueAttributes = asset.UniqueAttributes{}
	stored.Status = asset.StatusActive
	stored.CreatedBy, stored.UpdatedBy = m.actor, m.actor
	stored.CreateTime, stored.UpdateTime = now, now
	stored.Tags = mergeTags(nil, in.Tags, false)
	stored.Terms = mergeTerms(nil, in.Terms)
	if req.CustomMetadata == CMIgnore || req.CustomMetadata == "" {
		stored.CustomMetadata = nil
	}
	stored.Normalize()

	m.assets[stored.GUID] = stored
	m.byQN[qnKey(stored.TypeName, stored.QualifiedName)] = stored.GUID

	result := &MutationResult{CreatedAssets: []asset.Asset{cloneAsset(stored)}}
	if asset.IsPlaceholderGUID(placeholder) {
		result.GUIDAssignments = map[string]string{placeholder: stored.GUID}
	}
	return result, nil
}

// applyCoreFields copies the incoming non-empty common fields onto the
// stored asset. Empty fields mean "unspecified, leave untouched"; explicit
// removal travels through the patch clear-set.
func (m *Memory) applyCoreFields(stored *asset.Asset, in asset.Asset) {
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&stored.Name, in.Name)
	setStr(&stored.DisplayName, in.DisplayName)
	setStr(&stored.Description, in.Description)
	setStr(&stored.UserDescription, in.UserDescription)
	setStr(&stored.CertificateStatusMessage, in.CertificateStatusMessage)
	setStr(&stored.AnnouncementTitle, in.AnnouncementTitle)
	setStr(&stored.AnnouncementMessage, in.AnnouncementMessage)
	if in.CertificateStatus != "" {
		stored.CertificateStatus = in.CertificateStatus
		stored.CertificateUpdatedBy = m.actor
		stored.CertificateUpdatedAt = time.Now().UnixMilli()
	}
	if in.AnnouncementType != "" {
		stored.AnnouncementType = in.AnnouncementType
		stored.AnnouncementUpdatedBy = m.actor
		stored.AnnouncementUpdatedAt = time.Now().UnixMilli()
	}
	if in.OwnerUsers != nil {
		stored.OwnerUsers = in.OwnerUsers
	}
	if in.OwnerGroups != nil {
		stored.OwnerGroups = in.OwnerGroups
	}
	if in.AdminUsers != nil {
		stored.AdminUsers = in.AdminUsers
	}
	if in.AdminGroups != nil {
		stored.AdminGroups = in.AdminGroups
	}
	if in.AdminRoles != nil {
		stored.AdminRoles = in.AdminRoles
	}
}

// Delete implements Client.
func (m *Memory) Delete(_ context.Context, guid string, mode DeleteMode) (*DeletionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[guid]
	if !ok {
		return nil, &NotFoundError{ID: guid}
	}

	switch mode {
	case DeletePurge:
		delete(m.assets, guid)
		delete(m.byQN, qnKey(a.TypeName, a.ResolveQualifiedName()))
		a.Status = asset.StatusPurged
	default:
		a.Status = asset.StatusDeleted
		a.UpdatedBy = m.actor
		a.UpdateTime = time.Now().UnixMilli()
		m.assets[guid] = a
	}
	return &DeletionResult{DeletedAssets: []asset.Asset{cloneAsset(a)}}, nil
}

// Restore implements Client: a soft-deleted asset returns to ACTIVE.
func (m *Memory) Restore(_ context.Context, u *asset.Update) (*MutationResult, error) {
	if u == nil {
		return nil, fmt.Errorf("restore: nil update")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	guid := u.Asset.GUID
	if guid == "" || asset.IsPlaceholderGUID(guid) {
		var ok bool
		guid, ok = m.byQN[qnKey(u.Asset.TypeName, u.Asset.ResolveQualifiedName())]
		if !ok {
			return nil, &NotFoundError{TypeName: u.Asset.TypeName, ID: u.Asset.ResolveQualifiedName()}
		}
	}
	a, ok := m.assets[guid]
	if !ok {
		return nil, &NotFoundError{ID: guid}
	}

	a.Status = asset.StatusActive
	a.UpdatedBy = m.actor
	a.UpdateTime = time.Now().UnixMilli()
	m.assets[guid] = a
	return &MutationResult{UpdatedAssets: []asset.Asset{cloneAsset(a)}}, nil
}

// Search implements Searcher. Results stream in qualifiedName order; each
// iteration of the returned sequence restarts against current state.
func (m *Memory) Search(_ context.Context, q Query) iter.Seq2[asset.Asset, error] {
	return func(yield func(asset.Asset, error) bool) {
		m.mu.RLock()
		snapshot := make([]asset.Asset, 0, len(m.assets))
		for _, a := range m.assets {
			snapshot = append(snapshot, a)
		}
		m.mu.RUnlock()

		slices.SortFunc(snapshot, func(a, b asset.Asset) int {
			if c := strings.Compare(a.TypeName, b.TypeName); c != 0 {
				return c
			}
			return strings.Compare(a.QualifiedName, b.QualifiedName)
		})

		n := 0
		for _, a := range snapshot {
			if !matches(a, q) {
				continue
			}
			if q.Limit > 0 && n >= q.Limit {
				return
			}
			n++
			if !yield(cloneAsset(a), nil) {
				return
			}
		}
	}
}

func matches(a asset.Asset, q Query) bool {
	if q.ActiveOnly && a.Status != asset.StatusActive {
		return false
	}
	if len(q.TypeNames) > 0 && !slices.Contains(q.TypeNames, a.TypeName) {
		return false
	}
	for _, p := range q.Where {
		v, ok := a.Field(p.Field)
		if !ok || v != p.Value {
			return false
		}
	}
	return true
}

func qnKey(typeName, qualifiedName string) string {
	return typeName + "\x00" + qualifiedName
}

// mergeTags applies incoming tag entries to the stored set: a full replace
// when requested, otherwise per-item APPEND/REMOVE/REPLACE semantics.
func mergeTags(stored, incoming []asset.Tag, replaceAll bool) []asset.Tag {
	if replaceAll {
		stored = nil
	}
	byName := make(map[string]asset.Tag, len(stored)+len(incoming))
	for _, t := range stored {
		byName[t.TypeName] = t
	}
	for _, t := range incoming {
		if t.Semantic == asset.SemanticRemove && !replaceAll {
			delete(byName, t.TypeName)
			continue
		}
		t.Semantic = ""
		byName[t.TypeName] = t
	}
	out := make([]asset.Tag, 0, len(byName))
	for _, t := range byName {
		out = append(out, t)
	}
	return asset.NormalizeTags(out)
}

// mergeTerms applies per-item term semantics. When every incoming term
// carries REPLACE, the set is replaced wholesale.
func mergeTerms(stored, incoming []asset.Reference) []asset.Reference {
	if len(incoming) == 0 {
		return stored
	}
	allReplace := true
	for _, t := range incoming {
		if t.Semantic != asset.SemanticReplace {
			allReplace = false
			break
		}
	}
	if allReplace {
		return stripTermSemantics(incoming)
	}

	out := slices.Clone(stored)
	for _, t := range incoming {
		switch t.Semantic {
		case asset.SemanticRemove:
			out = slices.DeleteFunc(out, func(existing asset.Reference) bool {
				return existing.GUID == t.GUID
			})
		default:
			if !slices.ContainsFunc(out, func(existing asset.Reference) bool {
				return termKey(existing) == termKey(t)
			}) {
				t.Semantic = ""
				out = append(out, t)
			}
		}
	}
	return out
}

func stripTermSemantics(terms []asset.Reference) []asset.Reference {
	out := make([]asset.Reference, 0, len(terms))
	for _, t := range terms {
		t.Semantic = ""
		out = append(out, t)
	}
	return out
}

func termKey(r asset.Reference) string {
	if r.GUID != "" {
		return "#" + r.GUID
	}
	return r.QualifiedName()
}

// mergeCustomMetadata merges staged custom metadata per the requested
// handling. Each named set stays independently mutable.
func mergeCustomMetadata(stored, incoming map[string]map[string]any, handling CustomMetadataHandling) map[string]map[string]any {
	switch handling {
	case CMReplaceAll:
		return cloneCM(incoming)
	case CMReplaceSets:
		out := cloneCM(stored)
		for setName, attrs := range incoming {
			if len(attrs) == 0 {
				delete(out, setName)
				continue
			}
			if out == nil {
				out = make(map[string]map[string]any)
			}
			out[setName] = maps.Clone(attrs)
		}
		return out
	case CMMerge:
		out := cloneCM(stored)
		if out == nil && len(incoming) > 0 {
			out = make(map[string]map[string]any)
		}
		for setName, attrs := range incoming {
			if out[setName] == nil {
				out[setName] = make(map[string]any)
			}
			for k, v := range attrs {
				out[setName][k] = v
			}
		}
		return out
	default: // CMIgnore
		return stored
	}
}

func cloneCM(cm map[string]map[string]any) map[string]map[string]any {
	if cm == nil {
		return nil
	}
	out := make(map[string]map[string]any, len(cm))
	for k, v := range cm {
		out[k] = maps.Clone(v)
	}
	return out
}

// clearField zeroes a field named in the patch clear-set, mirroring the
// serializer's explicit-null convention.
func clearField(a *asset.Asset, name string) {
	switch name {
	case asset.FieldDescription:
		a.Description = ""
	case asset.FieldUserDescription:
		a.UserDescription = ""
	case asset.FieldDisplayName:
		a.DisplayName = ""
	case asset.FieldCertificateStatus:
		a.CertificateStatus = ""
		a.CertificateUpdatedBy = ""
		a.CertificateUpdatedAt = 0
	case asset.FieldCertificateStatusMessage:
		a.CertificateStatusMessage = ""
	case asset.FieldAnnouncementType:
		a.AnnouncementType = ""
		a.AnnouncementUpdatedBy = ""
		a.AnnouncementUpdatedAt = 0
	case asset.FieldAnnouncementTitle:
		a.AnnouncementTitle = ""
	case asset.FieldAnnouncementMessage:
		a.AnnouncementMessage = ""
	case asset.FieldOwnerUsers:
		a.OwnerUsers = nil
	case asset.FieldOwnerGroups:
		a.OwnerGroups = nil
	case asset.FieldAdminUsers:
		a.AdminUsers = nil
	case asset.FieldAdminGroups:
		a.AdminGroups = nil
	case asset.FieldAdminRoles:
		a.AdminRoles = nil
	case asset.FieldTags, asset.FieldTagNames:
		a.Tags = nil
	case asset.FieldTerms:
		a.Terms = nil
	default:
		delete(a.Attributes, name)
	}
}

// cloneAsset deep-copies the slices and maps so stored state never aliases
// caller state.
func cloneAsset(a asset.Asset) asset.Asset {
	a.OwnerUsers = slices.Clone(a.OwnerUsers)
	a.OwnerGroups = slices.Clone(a.OwnerGroups)
	a.AdminUsers = slices.Clone(a.AdminUsers)
	a.AdminGroups = slices.Clone(a.AdminGroups)
	a.AdminRoles = slices.Clone(a.AdminRoles)
	a.Tags = slices.Clone(a.Tags)
	a.Terms = slices.Clone(a.Terms)
	a.ImmediateUpstream = slices.Clone(a.ImmediateUpstream)
	a.ImmediateDownstream = slices.Clone(a.ImmediateDownstream)
	a.CustomMetadata = cloneCM(a.CustomMetadata)
	a.Attributes = maps.Clone(a.Attributes)
	return a
}

// MemoryCache is a map-backed identity cache.
type MemoryCache struct {
	mu     sync.RWMutex
	kind   string
	byName map[string]string
	byID   map[string]string
}

// NewMemoryCache returns an empty identity cache for the given identity
// kind (role, group, user).
func NewMemoryCache(kind string) *MemoryCache {
	return &MemoryCache{
		kind:   kind,
		byName: make(map[string]string),
		byID:   make(map[string]string),
	}
}

// Register adds one name/ID pair.
func (c *MemoryCache) Register(name, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName[name] = id
	c.byID[id] = name
}

// IDForName implements IdentityCache.
func (c *MemoryCache) IDForName(_ context.Context, name string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byName[name]
	if !ok {
		return "", &NotFoundError{TypeName: c.kind, ID: name}
	}
	return id, nil
}

// NameForID implements IdentityCache.
func (c *MemoryCache) NameForID(_ context.Context, id string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.byID[id]
	if !ok {
		return "", &NotFoundError{TypeName: c.kind, ID: id}
	}
	return name, nil
}

// Verify interface compliance.
var (
	_ Client        = (*Memory)(nil)
	_ Searcher      = (*Memory)(nil)
	_ IdentityCache = (*MemoryCache)(nil)
)
