package asset

// Wire names for the common asset fields. Used as keys in attribute patches
// and in the typedef registry's required-field lists.
const (
	FieldQualifiedName   = "qualifiedName"
	FieldName            = "name"
	FieldDisplayName     = "displayName"
	FieldDescription     = "description"
	FieldUserDescription = "userDescription"

	FieldCertificateStatus        = "certificateStatus"
	FieldCertificateStatusMessage = "certificateStatusMessage"

	FieldAnnouncementType    = "announcementType"
	FieldAnnouncementTitle   = "announcementTitle"
	FieldAnnouncementMessage = "announcementMessage"

	FieldOwnerUsers  = "ownerUsers"
	FieldOwnerGroups = "ownerGroups"
	FieldAdminUsers  = "adminUsers"
	FieldAdminGroups = "adminGroups"
	FieldAdminRoles  = "adminRoles"

	FieldTags     = "classifications"
	FieldTagNames = "classificationNames"
	FieldTerms    = "meanings"
)
