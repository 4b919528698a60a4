package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/txn2/catalog-go/pkg/asset"
	"github.com/txn2/catalog-go/pkg/transport"
)

// seedAsset is one fixture entry. Only identity is mandatory; everything
// else is optional dressing for the seeded asset.
type seedAsset struct {
	TypeName      string         `yaml:"typeName"`
	QualifiedName string         `yaml:"qualifiedName"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	OwnerUsers    []string       `yaml:"ownerUsers"`
	Tags          []string       `yaml:"tags"`
	Attributes    map[string]any `yaml:"attributes"`
}

type seedPrincipal struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

type seedFile struct {
	Assets []seedAsset     `yaml:"assets"`
	Roles  []seedPrincipal `yaml:"roles"`
	Groups []seedPrincipal `yaml:"groups"`
	Users  []seedPrincipal `yaml:"users"`
}

func seedFromFile(mem *transport.Memory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}
	var fixture seedFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	for _, p := range fixture.Roles {
		mem.RegisterRole(p.Name, p.ID)
	}
	for _, p := range fixture.Groups {
		mem.RegisterGroup(p.Name, p.ID)
	}
	for _, p := range fixture.Users {
		mem.RegisterUser(p.Name, p.ID)
	}

	for i, entry := range fixture.Assets {
		if entry.TypeName == "" || entry.QualifiedName == "" {
			return fmt.Errorf("seed file %s: asset %d needs typeName and qualifiedName", path, i)
		}
		a := asset.Asset{
			TypeName:      entry.TypeName,
			QualifiedName: entry.QualifiedName,
			Name:          entry.Name,
			Description:   entry.Description,
			OwnerUsers:    asset.NormalizeSet(entry.OwnerUsers),
			Attributes:    entry.Attributes,
		}
		for _, tag := range entry.Tags {
			a.Tags = append(a.Tags, asset.Tag{TypeName: tag})
		}
		mem.Seed(a)
	}
	return nil
}
