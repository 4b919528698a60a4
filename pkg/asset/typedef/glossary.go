package typedef

import (
	"strings"

	"github.com/txn2/catalog-go/pkg/asset"
)

// NewGlossary builds a creation builder for a business glossary. The
// qualifiedName is a slug derived from the name.
func NewGlossary(name string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeAtlasGlossary)
	}

	a := newBuilder(TypeAtlasGlossary)
	a.Name = name
	a.QualifiedName = slugify(name)
	return a, nil
}

// NewGlossaryTerm builds a creation builder for a term anchored to a
// glossary. The anchor travels as a reference, never as the full glossary
// object.
func NewGlossaryTerm(name string, glossary asset.Asset) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, errEmptyName(TypeAtlasGlossaryTerm)
	}
	anchor, err := glossary.Reference()
	if err != nil {
		return asset.Asset{}, err
	}

	a := newBuilder(TypeAtlasGlossaryTerm)
	a.Name = name
	glossaryQN := glossary.ResolveQualifiedName()
	if glossaryQN != "" {
		a.QualifiedName = glossaryQN + "/" + slugify(name)
		a.SetAttr(AttrGlossaryQualifiedName, glossaryQN)
	}
	a.SetAttr(AttrAnchor, anchor)
	return a, nil
}

// slugify lowercases and replaces runs of non-alphanumerics with a single
// hyphen.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
