package typedef

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/txn2/catalog-go/pkg/asset"
)

// ConnectorType identifies the source system behind a connection.
type ConnectorType string

const (
	ConnectorSnowflake ConnectorType = "snowflake"
	ConnectorPostgres  ConnectorType = "postgres"
	ConnectorTrino     ConnectorType = "trino"
	ConnectorMongoDB   ConnectorType = "mongodb"
	ConnectorS3        ConnectorType = "s3"
	ConnectorKafka     ConnectorType = "kafka"
)

// Category returns the coarse connector category.
func (c ConnectorType) Category() string {
	switch c {
	case ConnectorS3:
		return "object-store"
	case ConnectorKafka:
		return "event-bus"
	default:
		return "warehouse"
	}
}

var qnMu sync.Mutex
var lastEpoch int64

// GenerateConnectionQualifiedName produces a unique qualifiedName for a new
// connection, ending in an epoch-seconds component. Concurrent calls within
// the same second still get distinct names: the epoch is bumped past the
// last one handed out.
func GenerateConnectionQualifiedName(connector ConnectorType) string {
	qnMu.Lock()
	defer qnMu.Unlock()
	epoch := time.Now().Unix()
	if epoch <= lastEpoch {
		epoch = lastEpoch + 1
	}
	lastEpoch = epoch
	return "default/" + string(connector) + "/" + strconv.FormatInt(epoch, 10)
}

// ConnectionQualifiedName extracts the connection portion (the first three
// segments) from any descendant qualifiedName.
func ConnectionQualifiedName(qualifiedName string) string {
	parts := strings.SplitN(qualifiedName, "/", 4)
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[:3], "/")
}

// ConnectorFromQualifiedName extracts the connector name (the second
// segment) from any qualifiedName under a connection.
func ConnectorFromQualifiedName(qualifiedName string) string {
	parts := strings.SplitN(qualifiedName, "/", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// NewConnection builds a creation builder for a connection. At least one of
// the three admin lists must be non-empty; whether each identifier actually
// resolves is verified against the identity caches at save time, before the
// request goes out.
func NewConnection(name string, connector ConnectorType, adminRoles, adminGroups, adminUsers []string) (asset.Asset, error) {
	if name == "" {
		return asset.Asset{}, fmt.Errorf("connection: %w", errEmptyName(TypeConnection))
	}
	roles := asset.NormalizeSet(adminRoles)
	groups := asset.NormalizeSet(adminGroups)
	users := asset.NormalizeSet(adminUsers)
	if len(roles) == 0 && len(groups) == 0 && len(users) == 0 {
		return asset.Asset{}, asset.ErrNoConnectionAdmin
	}

	a := newBuilder(TypeConnection)
	a.Name = name
	a.QualifiedName = GenerateConnectionQualifiedName(connector)
	a.AdminRoles = roles
	a.AdminGroups = groups
	a.AdminUsers = users
	a.SetAttr(AttrConnectorName, string(connector))
	a.SetAttr(AttrCategory, connector.Category())
	return a, nil
}

func errEmptyName(typeName string) error {
	return &asset.MissingRequiredFieldError{TypeName: typeName, Fields: []string{asset.FieldName}}
}
