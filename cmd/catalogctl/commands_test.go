package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/catalog-go/pkg/config"
)

const fixture = `
assets:
  - typeName: Table
    qualifiedName: default/snowflake/1/sales/public/orders
    name: orders
    description: order facts
  - typeName: Table
    qualifiedName: default/snowflake/1/sales/public/customers
    name: customers
  - typeName: View
    qualifiedName: default/snowflake/1/sales/public/orders_v
    name: orders_v
users:
  - name: ada
    id: user-1
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvAPIToken, "")
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	seed := writeFixture(t)
	out, err := runCommand(t, "--seed", seed,
		"get", "Table", "default/snowflake/1/sales/public/orders")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "orders"`)
	assert.Contains(t, out, `"description": "order facts"`)
}

func TestGetCommand_NotFound(t *testing.T) {
	seed := writeFixture(t)
	_, err := runCommand(t, "--seed", seed, "get", "Table", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Table asset found")
}

func TestSearchCommand(t *testing.T) {
	seed := writeFixture(t)
	out, err := runCommand(t, "--seed", seed, "search", "--type", "Table")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, out, "customers")
	assert.NotContains(t, out, "orders_v")
}

func TestTagAddCommand(t *testing.T) {
	seed := writeFixture(t)
	out, err := runCommand(t, "--seed", seed,
		"tag", "add", "Table", "default/snowflake/1/sales/public/orders", "PII")
	require.NoError(t, err)
	assert.Contains(t, out, `"typeName": "PII"`)
}

func TestCertCommand_RejectsUnknownStatus(t *testing.T) {
	seed := writeFixture(t)
	_, err := runCommand(t, "--seed", seed,
		"cert", "Table", "default/snowflake/1/sales/public/orders", "GOLDEN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown certificate status")
}
