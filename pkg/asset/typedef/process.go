package typedef

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/txn2/catalog-go/pkg/asset"
)

// GenerateProcessQualifiedName derives a deterministic qualifiedName for a
// lineage process from its connection, inputs, outputs, and optional parent:
// the same wiring always hashes to the same identity, so re-registering a
// pipeline run updates the existing process instead of creating a sibling.
func GenerateProcessQualifiedName(connectionQualifiedName string, inputs, outputs []asset.Reference, parent *asset.Reference) string {
	parts := make([]string, 0, len(inputs)+len(outputs)+2)
	parts = append(parts, connectionQualifiedName)
	for _, r := range inputs {
		parts = append(parts, "in:"+referenceKey(r))
	}
	for _, r := range outputs {
		parts = append(parts, "out:"+referenceKey(r))
	}
	if parent != nil {
		parts = append(parts, "parent:"+referenceKey(*parent))
	}
	sort.Strings(parts[1:])

	sum := md5.Sum([]byte(strings.Join(parts, "\n")))
	return connectionQualifiedName + "/" + hex.EncodeToString(sum[:])
}

// GenerateProcessName derives a readable default name from the process
// wiring: the final path segment of each input and output qualifiedName,
// joined as "a, b -> c".
func GenerateProcessName(inputs, outputs []asset.Reference) string {
	return segmentList(inputs) + " -> " + segmentList(outputs)
}

func segmentList(refs []asset.Reference) string {
	segs := make([]string, 0, len(refs))
	for _, r := range refs {
		id := r.QualifiedName()
		if id == "" {
			id = r.GUID
		}
		segs = append(segs, lastSegment(id))
	}
	return strings.Join(segs, ", ")
}

func referenceKey(r asset.Reference) string {
	if qn := r.QualifiedName(); qn != "" {
		return r.TypeName + "/" + qn
	}
	return r.TypeName + "#" + r.GUID
}

// NewProcess builds a creation builder for a lineage process. name may be
// empty, in which case a readable one is generated from the inputs and
// outputs.
func NewProcess(name, connectionQualifiedName, sql string, inputs, outputs []asset.Reference, parent *asset.Reference) (asset.Asset, error) {
	if connectionQualifiedName == "" {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeProcess, Fields: []string{AttrConnectionQualifiedName}}
	}
	if len(inputs) == 0 && len(outputs) == 0 {
		return asset.Asset{}, &asset.MissingRequiredFieldError{TypeName: TypeProcess, Fields: []string{AttrInputs, AttrOutputs}}
	}
	if name == "" {
		name = GenerateProcessName(inputs, outputs)
	}

	a := newBuilder(TypeProcess)
	a.Name = name
	a.QualifiedName = GenerateProcessQualifiedName(connectionQualifiedName, inputs, outputs, parent)
	a.SetAttr(AttrConnectionQualifiedName, connectionQualifiedName)
	a.SetAttr(AttrConnectorName, ConnectorFromQualifiedName(connectionQualifiedName))
	a.SetAttr(AttrInputs, inputs)
	a.SetAttr(AttrOutputs, outputs)
	if parent != nil {
		a.SetAttr(AttrProcessParent, *parent)
	}
	if sql != "" {
		a.SetAttr(AttrSQL, sql)
	}
	return a, nil
}
