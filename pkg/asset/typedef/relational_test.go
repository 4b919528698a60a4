package typedef

import (
	"testing"

	"github.com/txn2/catalog-go/pkg/asset"
)

func TestNewColumn(t *testing.T) {
	table, err := NewTable("orders", "conn/db/schema")
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	table.QualifiedName = "conn/db/schema/orders"

	col, err := NewColumn("amount", table, 3)
	if err != nil {
		t.Fatalf("NewColumn() error = %v", err)
	}

	if col.QualifiedName != "conn/db/schema/orders/amount" {
		t.Errorf("QualifiedName = %q", col.QualifiedName)
	}
	if got, _ := col.Attr(AttrOrder); got != 3 {
		t.Errorf("order = %v, want 3", got)
	}
	if got := col.StringAttr(AttrTableQualifiedName); got != "conn/db/schema/orders" {
		t.Errorf("tableQualifiedName = %q", got)
	}

	ref, ok := col.Attr(AttrParentTable)
	if !ok {
		t.Fatal("column must reference its parent table")
	}
	parent, ok := ref.(asset.Reference)
	if !ok {
		t.Fatalf("parent is %T, want asset.Reference", ref)
	}
	if parent.GUID != "" || parent.QualifiedName() != "conn/db/schema/orders" {
		t.Errorf("parent = %+v, want identity-only by-qualifiedName reference", parent)
	}
}

func TestNewColumn_ViewParent(t *testing.T) {
	view, err := NewView("daily_revenue", "conn/db/schema")
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}

	col, err := NewColumn("total", view, 1)
	if err != nil {
		t.Fatalf("NewColumn() error = %v", err)
	}
	if _, ok := col.Attr(AttrParentView); !ok {
		t.Error("view-parented column must reference the view")
	}
	if col.StringAttr(AttrViewQualifiedName) == "" {
		t.Error("view-parented column must carry viewQualifiedName")
	}
}

func TestNewColumn_BadParent(t *testing.T) {
	if _, err := NewColumn("c", asset.Asset{TypeName: TypeTable}, 1); err == nil {
		t.Error("parent without identity must be rejected")
	}

	conn := asset.Asset{TypeName: TypeConnection, QualifiedName: "default/snowflake/1"}
	if _, err := NewColumn("c", conn, 1); err == nil {
		t.Error("non-table parent must be rejected")
	}
}

func TestQualifiedNameHierarchy(t *testing.T) {
	db, err := NewDatabase("sales", "default/snowflake/1694160000")
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	sch, err := NewSchema("public", db.QualifiedName)
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	tbl, err := NewTable("orders", sch.QualifiedName)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	if tbl.QualifiedName != "default/snowflake/1694160000/sales/public/orders" {
		t.Errorf("table qualifiedName = %q", tbl.QualifiedName)
	}
	if got := tbl.StringAttr(AttrConnectionQualifiedName); got != "default/snowflake/1694160000" {
		t.Errorf("connectionQualifiedName = %q", got)
	}
	if got := tbl.StringAttr(AttrDatabaseQualifiedName); got != db.QualifiedName {
		t.Errorf("databaseQualifiedName = %q", got)
	}
	if got := tbl.StringAttr(AttrConnectorName); got != "snowflake" {
		t.Errorf("connectorName = %q", got)
	}
}

func TestNewTablePartition(t *testing.T) {
	part, err := NewTablePartition("2026-08", "conn/db/schema/orders")
	if err != nil {
		t.Fatalf("NewTablePartition() error = %v", err)
	}
	if part.QualifiedName != "conn/db/schema/orders/2026-08" {
		t.Errorf("QualifiedName = %q", part.QualifiedName)
	}
}
