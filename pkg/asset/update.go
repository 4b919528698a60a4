package asset

// Update is the mutation builder: a minimal asset (identity plus required
// fields, typically produced by the typedef trim) together with an attribute
// patch. Tag and term changes ride on the asset with per-item semantics so
// that appends and removes are atomic; whole-set clears go through the
// patch as explicit nulls.
type Update struct {
	Asset Asset
	Patch *Patch
}

// NewUpdate wraps a minimal asset in a mutation builder.
func NewUpdate(a Asset) *Update {
	return &Update{Asset: a, Patch: NewPatch()}
}

// AppendTag adds one tag with APPEND semantic. Other tags on the remote
// asset are not disturbed. Appending a tag that is already pending on this
// builder overwrites its propagation flags, not its presence.
func (u *Update) AppendTag(t Tag) {
	t.Semantic = SemanticAppend
	u.Asset.Tags = upsertTag(u.Asset.Tags, t)
}

// RemoveTag records a detach of the named tag with REMOVE semantic. The
// server detaches the tag if present; a remove of an absent tag is a no-op
// server-side.
func (u *Update) RemoveTag(typeName string) {
	u.Asset.Tags = upsertTag(u.Asset.Tags, Tag{TypeName: typeName, Semantic: SemanticRemove})
}

// ClearTags drops all pending tag entries and marks the tag fields as
// explicit nulls, which the serializer turns into "replace the full tag set
// with empty". Clearing is idempotent.
func (u *Update) ClearTags() {
	u.Asset.Tags = nil
	u.Patch.Clear(FieldTags)
	u.Patch.Clear(FieldTagNames)
}

// AppendTerm assigns a glossary term with APPEND semantic.
func (u *Update) AppendTerm(term Reference) {
	u.Asset.Terms = append(u.Asset.Terms, term.WithSemantic(SemanticAppend))
}

// RemoveTerm records a detach of an assigned term. Terms are removed by
// GUID; a term reference without one fails with ErrMissingTermGUID.
func (u *Update) RemoveTerm(term Reference) error {
	if term.GUID == "" {
		return ErrMissingTermGUID
	}
	u.Asset.Terms = append(u.Asset.Terms, term.WithSemantic(SemanticRemove))
	return nil
}

// ReplaceTerms replaces the full assigned-term set with the given terms.
func (u *Update) ReplaceTerms(terms []Reference) {
	u.Asset.Terms = make([]Reference, 0, len(terms))
	for _, t := range terms {
		u.Asset.Terms = append(u.Asset.Terms, t.WithSemantic(SemanticReplace))
	}
	if len(terms) == 0 {
		u.Patch.Clear(FieldTerms)
	}
}

// SetCertificate sets the certificate status and message. The updater and
// timestamp are assigned server-side.
func (u *Update) SetCertificate(status CertificateStatus, message string) {
	u.Asset.CertificateStatus = status
	u.Asset.CertificateStatusMessage = message
	u.Patch.Set(FieldCertificateStatus, string(status))
	if message != "" {
		u.Patch.Set(FieldCertificateStatusMessage, message)
	}
}

// RemoveCertificate clears the certificate from the asset.
func (u *Update) RemoveCertificate() {
	u.Asset.CertificateStatus = ""
	u.Asset.CertificateStatusMessage = ""
	u.Patch.Clear(FieldCertificateStatus)
	u.Patch.Clear(FieldCertificateStatusMessage)
}

// SetAnnouncement sets the announcement banner fields.
func (u *Update) SetAnnouncement(typ AnnouncementType, title, message string) {
	u.Asset.AnnouncementType = typ
	u.Asset.AnnouncementTitle = title
	u.Asset.AnnouncementMessage = message
	u.Patch.Set(FieldAnnouncementType, string(typ))
	u.Patch.Set(FieldAnnouncementTitle, title)
	u.Patch.Set(FieldAnnouncementMessage, message)
}

// RemoveAnnouncement clears the announcement from the asset.
func (u *Update) RemoveAnnouncement() {
	u.Asset.AnnouncementType = ""
	u.Asset.AnnouncementTitle = ""
	u.Asset.AnnouncementMessage = ""
	u.Patch.Clear(FieldAnnouncementType)
	u.Patch.Clear(FieldAnnouncementTitle)
	u.Patch.Clear(FieldAnnouncementMessage)
}

// SetDescription sets the system description.
func (u *Update) SetDescription(description string) {
	u.Asset.Description = description
	u.Patch.Set(FieldDescription, description)
}

// RemoveDescription clears the system description.
func (u *Update) RemoveDescription() {
	u.Asset.Description = ""
	u.Patch.Clear(FieldDescription)
}

// SetUserDescription sets the user-provided description.
func (u *Update) SetUserDescription(description string) {
	u.Asset.UserDescription = description
	u.Patch.Set(FieldUserDescription, description)
}

// RemoveUserDescription clears the user-provided description.
func (u *Update) RemoveUserDescription() {
	u.Asset.UserDescription = ""
	u.Patch.Clear(FieldUserDescription)
}

// SetOwners replaces the owner users and groups.
func (u *Update) SetOwners(users, groups []string) {
	u.Asset.OwnerUsers = NormalizeSet(users)
	u.Asset.OwnerGroups = NormalizeSet(groups)
	u.Patch.Set(FieldOwnerUsers, u.Asset.OwnerUsers)
	u.Patch.Set(FieldOwnerGroups, u.Asset.OwnerGroups)
}

// RemoveOwners clears all owner users and groups.
func (u *Update) RemoveOwners() {
	u.Asset.OwnerUsers = nil
	u.Asset.OwnerGroups = nil
	u.Patch.Clear(FieldOwnerUsers)
	u.Patch.Clear(FieldOwnerGroups)
}

// SetCustomMetadata stages attribute values for one named custom-metadata
// set. How the values merge with the remote set is decided by the save
// request's custom-metadata handling.
func (u *Update) SetCustomMetadata(setName string, attrs map[string]any) {
	if u.Asset.CustomMetadata == nil {
		u.Asset.CustomMetadata = make(map[string]map[string]any)
	}
	u.Asset.CustomMetadata[setName] = attrs
}
