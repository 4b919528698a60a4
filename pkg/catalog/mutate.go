package catalog

import (
	"context"
	"fmt"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/asset/typedef"
	"github.com/txn2/catalog-go/pkg/transport"
)

// updater fetches the current asset, trims it to its required identity
// fields, and hands the resulting update to mutate. The trimmed payload
// carries only identity plus whatever mutate stages, so an inadvertent
// overwrite of unrelated fields cannot happen.
func (c *Catalog) updater(ctx context.Context, typeName, qualifiedName string, mutate func(*asset.Update) error) (*asset.Update, error) {
	current, err := c.GetByQualifiedName(ctx, typeName, qualifiedName)
	if err != nil {
		return nil, err
	}
	trimmed, err := typedef.TrimToRequired(current)
	if err != nil {
		return nil, fmt.Errorf("trim %s %s: %w", typeName, qualifiedName, err)
	}
	trimmed.GUID = current.GUID

	u := asset.NewUpdate(trimmed)
	if err := mutate(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Catalog) mutate(ctx context.Context, typeName, qualifiedName string, fn func(*asset.Update) error) (*asset.Asset, error) {
	u, err := c.updater(ctx, typeName, qualifiedName, fn)
	if err != nil {
		return nil, err
	}
	return c.Save(ctx, u)
}

// SetCertificate stamps a certificate status and message on the asset.
func (c *Catalog) SetCertificate(ctx context.Context, typeName, qualifiedName string, status asset.CertificateStatus, message string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetCertificate(status, message)
		return nil
	})
}

// RemoveCertificate clears the certificate from the asset.
func (c *Catalog) RemoveCertificate(ctx context.Context, typeName, qualifiedName string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.RemoveCertificate()
		return nil
	})
}

// SetAnnouncement places an announcement banner on the asset.
func (c *Catalog) SetAnnouncement(ctx context.Context, typeName, qualifiedName string, kind asset.AnnouncementType, title, message string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetAnnouncement(kind, title, message)
		return nil
	})
}

// RemoveAnnouncement clears the announcement from the asset.
func (c *Catalog) RemoveAnnouncement(ctx context.Context, typeName, qualifiedName string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.RemoveAnnouncement()
		return nil
	})
}

// UpdateDescription sets the system description of the asset.
func (c *Catalog) UpdateDescription(ctx context.Context, typeName, qualifiedName, description string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetDescription(description)
		return nil
	})
}

// UpdateUserDescription sets the curated description of the asset.
func (c *Catalog) UpdateUserDescription(ctx context.Context, typeName, qualifiedName, description string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetUserDescription(description)
		return nil
	})
}

// UpdateOwners sets the owner users and groups of the asset. Nil slices
// leave the corresponding dimension untouched.
func (c *Catalog) UpdateOwners(ctx context.Context, typeName, qualifiedName string, users, groups []string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetOwners(users, groups)
		return nil
	})
}

// RemoveOwners clears all owner users and groups from the asset.
func (c *Catalog) RemoveOwners(ctx context.Context, typeName, qualifiedName string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.RemoveOwners()
		return nil
	})
}

// AppendTags adds the given tags to the asset, leaving existing tags in
// place. Duplicate type names collapse to the incoming entry.
func (c *Catalog) AppendTags(ctx context.Context, typeName, qualifiedName string, tags ...asset.Tag) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		for _, tag := range tags {
			u.AppendTag(tag)
		}
		return nil
	})
}

// RemoveTag detaches one tag, by its type name, from the asset.
func (c *Catalog) RemoveTag(ctx context.Context, typeName, qualifiedName, tagTypeName string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.RemoveTag(tagTypeName)
		return nil
	})
}

// ClearTags detaches every tag from the asset.
func (c *Catalog) ClearTags(ctx context.Context, typeName, qualifiedName string) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.ClearTags()
		return nil
	})
}

// AppendTerms links glossary terms to the asset, keeping existing links.
func (c *Catalog) AppendTerms(ctx context.Context, typeName, qualifiedName string, terms ...asset.Reference) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		for _, term := range terms {
			u.AppendTerm(term)
		}
		return nil
	})
}

// RemoveTerms unlinks glossary terms from the asset. Each term reference
// must carry a GUID.
func (c *Catalog) RemoveTerms(ctx context.Context, typeName, qualifiedName string, terms ...asset.Reference) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		for _, term := range terms {
			if err := u.RemoveTerm(term); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceTerms swaps the asset's linked terms for exactly the given set.
func (c *Catalog) ReplaceTerms(ctx context.Context, typeName, qualifiedName string, terms []asset.Reference) (*asset.Asset, error) {
	return c.mutate(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.ReplaceTerms(terms)
		return nil
	})
}

// UpdateCustomMetadataAttributes merges the given attributes into one
// custom metadata set. Attributes absent from attrs keep their values.
func (c *Catalog) UpdateCustomMetadataAttributes(ctx context.Context, typeName, qualifiedName, setName string, attrs map[string]any) (*asset.Asset, error) {
	return c.saveCM(ctx, typeName, qualifiedName, setName, attrs, transport.CMMerge)
}

// ReplaceCustomMetadata swaps one custom metadata set for exactly the given
// attributes. Other sets on the asset are untouched.
func (c *Catalog) ReplaceCustomMetadata(ctx context.Context, typeName, qualifiedName, setName string, attrs map[string]any) (*asset.Asset, error) {
	return c.saveCM(ctx, typeName, qualifiedName, setName, attrs, transport.CMReplaceSets)
}

// RemoveCustomMetadata deletes one custom metadata set from the asset.
func (c *Catalog) RemoveCustomMetadata(ctx context.Context, typeName, qualifiedName, setName string) (*asset.Asset, error) {
	return c.saveCM(ctx, typeName, qualifiedName, setName, map[string]any{}, transport.CMReplaceSets)
}

func (c *Catalog) saveCM(ctx context.Context, typeName, qualifiedName, setName string, attrs map[string]any, handling transport.CustomMetadataHandling) (*asset.Asset, error) {
	u, err := c.updater(ctx, typeName, qualifiedName, func(u *asset.Update) error {
		u.SetCustomMetadata(setName, attrs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.save(ctx, transport.SaveRequest{Update: u, CustomMetadata: handling})
}
