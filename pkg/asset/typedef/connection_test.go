package typedef

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/txn2/catalog-go/pkg/asset"
)

func TestNewConnection_RequiresAdmin(t *testing.T) {
	_, err := NewConnection("prod", ConnectorSnowflake, nil, nil, nil)
	if !errors.Is(err, asset.ErrNoConnectionAdmin) {
		t.Fatalf("error = %v, want ErrNoConnectionAdmin", err)
	}

	tests := []struct {
		name                  string
		roles, groups, users  []string
	}{
		{"roles only", []string{"admin"}, nil, nil},
		{"groups only", nil, []string{"data-eng"}, nil},
		{"users only", nil, nil, []string{"zoe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := NewConnection("prod", ConnectorSnowflake, tt.roles, tt.groups, tt.users)
			if err != nil {
				t.Fatalf("NewConnection() error = %v", err)
			}
			if conn.TypeName != TypeConnection {
				t.Errorf("TypeName = %q", conn.TypeName)
			}
		})
	}
}

func TestGenerateConnectionQualifiedName_Distinct(t *testing.T) {
	a := GenerateConnectionQualifiedName(ConnectorSnowflake)
	b := GenerateConnectionQualifiedName(ConnectorSnowflake)

	if a == b {
		t.Fatalf("qualifiedNames must not collide: %q", a)
	}

	prefixA, epochA, okA := splitEpoch(a)
	prefixB, epochB, okB := splitEpoch(b)
	if !okA || !okB {
		t.Fatalf("qualifiedNames %q, %q must end in an epoch component", a, b)
	}
	if prefixA != prefixB || prefixA != "default/snowflake" {
		t.Errorf("prefixes differ: %q vs %q", prefixA, prefixB)
	}
	if epochB <= epochA {
		t.Errorf("epoch must advance: %d then %d", epochA, epochB)
	}
}

func splitEpoch(qn string) (prefix string, epoch int64, ok bool) {
	i := strings.LastIndex(qn, "/")
	if i < 0 {
		return "", 0, false
	}
	epoch, err := strconv.ParseInt(qn[i+1:], 10, 64)
	return qn[:i], epoch, err == nil
}

func TestConnectionQualifiedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"default/snowflake/123/db/sch/orders", "default/snowflake/123"},
		{"default/snowflake/123", "default/snowflake/123"},
		{"default/snowflake", ""},
	}
	for _, tt := range tests {
		if got := ConnectionQualifiedName(tt.in); got != tt.want {
			t.Errorf("ConnectionQualifiedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
