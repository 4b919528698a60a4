package asset

import (
	"errors"
	"reflect"
	"testing"
)

func minimalTable() Asset {
	return Asset{
		TypeName:      "Table",
		GUID:          NewPlaceholderGUID(),
		QualifiedName: "default/snowflake/123/db/sch/orders",
		Name:          "orders",
	}
}

func TestUpdate_AppendTagAtomic(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.AppendTag(NewTag("PII", true, false, false, false))
	u.AppendTag(NewTag("Confidential", false, false, false, false))

	if len(u.Asset.Tags) != 2 {
		t.Fatalf("tags = %v, want both appended tags present", u.Asset.Tags)
	}
	for _, tag := range u.Asset.Tags {
		if tag.Semantic != SemanticAppend {
			t.Errorf("tag %s semantic = %q, want APPEND", tag.TypeName, tag.Semantic)
		}
	}
}

func TestUpdate_RemoveTag(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.RemoveTag("PII")

	if len(u.Asset.Tags) != 1 || u.Asset.Tags[0].Semantic != SemanticRemove {
		t.Fatalf("tags = %v, want single REMOVE entry", u.Asset.Tags)
	}
}

func TestUpdate_ClearTagsIdempotent(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.AppendTag(NewTag("PII", false, false, false, false))

	u.ClearTags()
	once := u.Patch.ClearList()
	u.ClearTags()
	twice := u.Patch.ClearList()

	if len(u.Asset.Tags) != 0 {
		t.Errorf("tags = %v, want empty after clear", u.Asset.Tags)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("null-field markers changed on repeat clear: %v vs %v", once, twice)
	}
}

func TestUpdate_RemoveTermRequiresGUID(t *testing.T) {
	u := NewUpdate(minimalTable())

	byQN, _ := RefByQualifiedName("AtlasGlossaryTerm", "glossary/revenue")
	if err := u.RemoveTerm(byQN); !errors.Is(err, ErrMissingTermGUID) {
		t.Errorf("RemoveTerm without guid error = %v, want ErrMissingTermGUID", err)
	}

	byGUID, _ := RefByGUID("AtlasGlossaryTerm", "abc")
	if err := u.RemoveTerm(byGUID); err != nil {
		t.Errorf("RemoveTerm with guid error = %v", err)
	}
	if len(u.Asset.Terms) != 1 || u.Asset.Terms[0].Semantic != SemanticRemove {
		t.Errorf("terms = %v, want single REMOVE entry", u.Asset.Terms)
	}
}

func TestUpdate_Certificate(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.SetCertificate(CertificateVerified, "reviewed by data governance")

	if v, _ := u.Patch.Value(FieldCertificateStatus); v != string(CertificateVerified) {
		t.Errorf("patched certificateStatus = %v", v)
	}

	u.RemoveCertificate()
	if !u.Patch.Cleared(FieldCertificateStatus) || !u.Patch.Cleared(FieldCertificateStatusMessage) {
		t.Error("removing the certificate must mark both fields as explicit null")
	}
	if u.Asset.CertificateStatus != "" {
		t.Error("certificate status should be dropped from the builder asset")
	}
}

func TestUpdate_Owners(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.SetOwners([]string{"zoe", "ada", "zoe"}, nil)

	if got := u.Asset.OwnerUsers; !reflect.DeepEqual(got, []string{"ada", "zoe"}) {
		t.Errorf("OwnerUsers = %v, want deduplicated sorted set", got)
	}

	u.RemoveOwners()
	if !u.Patch.Cleared(FieldOwnerUsers) || !u.Patch.Cleared(FieldOwnerGroups) {
		t.Error("removing owners must mark both owner fields as explicit null")
	}
}

func TestUpdate_Announcement(t *testing.T) {
	u := NewUpdate(minimalTable())
	u.SetAnnouncement(AnnouncementWarning, "schema change", "column amount widens to decimal(18,4)")
	if u.Asset.AnnouncementType != AnnouncementWarning {
		t.Errorf("AnnouncementType = %q", u.Asset.AnnouncementType)
	}

	u.RemoveAnnouncement()
	for _, f := range []string{FieldAnnouncementType, FieldAnnouncementTitle, FieldAnnouncementMessage} {
		if !u.Patch.Cleared(f) {
			t.Errorf("field %s not marked null after announcement removal", f)
		}
	}
}
