package asset

// Semantic tells the server how to merge an incoming relationship item or
// tag into the existing set on the asset.
type Semantic string

const (
	// SemanticReplace replaces the full set with the incoming items.
	SemanticReplace Semantic = "REPLACE"
	// SemanticAppend adds the incoming item without disturbing others.
	SemanticAppend Semantic = "APPEND"
	// SemanticRemove detaches the incoming item if present.
	SemanticRemove Semantic = "REMOVE"
)

// orDefault returns REPLACE when s is unset.
func (s Semantic) orDefault() Semantic {
	if s == "" {
		return SemanticReplace
	}
	return s
}
