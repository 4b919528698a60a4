package typedef

import (
	"testing"

	"github.com/txn2/catalog-go/pkg/asset"
)

func refQN(t *testing.T, typeName, qn string) asset.Reference {
	t.Helper()
	ref, err := asset.RefByQualifiedName(typeName, qn)
	if err != nil {
		t.Fatalf("RefByQualifiedName(%q) error = %v", qn, err)
	}
	return ref
}

func TestGenerateProcessQualifiedName_Deterministic(t *testing.T) {
	in := []asset.Reference{refQN(t, TypeTable, "conn/db/sch/raw_orders")}
	out := []asset.Reference{refQN(t, TypeTable, "conn/db/sch/orders")}

	a := GenerateProcessQualifiedName("default/trino/1", in, out, nil)
	b := GenerateProcessQualifiedName("default/trino/1", in, out, nil)
	if a != b {
		t.Errorf("same wiring must hash identically: %q vs %q", a, b)
	}

	c := GenerateProcessQualifiedName("default/trino/1", out, in, nil)
	if a == c {
		t.Error("swapping inputs and outputs must change the identity")
	}
}

func TestGenerateProcessName(t *testing.T) {
	in := []asset.Reference{
		refQN(t, TypeTable, "conn/db/sch/raw_orders"),
		refQN(t, TypeTable, "conn/db/sch/raw_customers"),
	}
	out := []asset.Reference{refQN(t, TypeTable, "conn/db/sch/orders")}

	got := GenerateProcessName(in, out)
	want := "raw_orders, raw_customers -> orders"
	if got != want {
		t.Errorf("GenerateProcessName() = %q, want %q", got, want)
	}
}

func TestNewProcess(t *testing.T) {
	in := []asset.Reference{refQN(t, TypeTable, "default/trino/1/db/sch/raw")}
	out := []asset.Reference{refQN(t, TypeTable, "default/trino/1/db/sch/clean")}

	p, err := NewProcess("", "default/trino/1", "insert into clean select * from raw", in, out, nil)
	if err != nil {
		t.Fatalf("NewProcess() error = %v", err)
	}
	if p.Name != "raw -> clean" {
		t.Errorf("generated name = %q", p.Name)
	}
	if p.StringAttr(AttrConnectorName) != "trino" {
		t.Errorf("connectorName = %q", p.StringAttr(AttrConnectorName))
	}

	if _, err := NewProcess("p", "default/trino/1", "", nil, nil, nil); err == nil {
		t.Error("process without inputs or outputs must be rejected")
	}
}
