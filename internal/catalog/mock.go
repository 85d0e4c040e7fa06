package catalog

import (
	"context"
	"fmt"

	"github.com/autoform/autoform/internal/schema"
)

// MockTable is the in-memory schema of one table served by MockCatalog.
type MockTable struct {
	Columns     []schema.Column
	NotNull     map[int]bool
	PrimaryKey  string // empty means no primary key
	ForeignKeys []schema.ForeignKeyEdge
}

// MockCatalog is a test double for the Catalog interface.
type MockCatalog struct {
	DSN    string
	Tables map[string]*MockTable

	ConnectErr error
	ColumnsErr error
	FKErr      error

	// Expanded records the tables whose foreign keys were listed, in order.
	Expanded []string
}

func (m *MockCatalog) Connect(_ context.Context) error { return m.ConnectErr }

func (m *MockCatalog) Close() error { return nil }

func (m *MockCatalog) Provider() string { return "mock" }

func (m *MockCatalog) Identity(table string) string {
	return m.DSN + "#" + table
}

func (m *MockCatalog) ListTables(_ context.Context) ([]TableInfo, error) {
	var tables []TableInfo
	for name := range m.Tables {
		tables = append(tables, TableInfo{Name: name})
	}
	return tables, nil
}

func (m *MockCatalog) Columns(_ context.Context, table string) ([]schema.Column, error) {
	if m.ColumnsErr != nil {
		return nil, m.ColumnsErr
	}
	t, ok := m.Tables[table]
	if !ok {
		return nil, fmt.Errorf("mock: unknown table %s", table)
	}
	return t.Columns, nil
}

func (m *MockCatalog) NotNullOrdinals(_ context.Context, table string) (map[int]bool, error) {
	t, ok := m.Tables[table]
	if !ok {
		return nil, fmt.Errorf("mock: unknown table %s", table)
	}
	if t.NotNull == nil {
		return map[int]bool{}, nil
	}
	return t.NotNull, nil
}

func (m *MockCatalog) PrimaryKeyName(_ context.Context, table string) (string, error) {
	t, ok := m.Tables[table]
	if !ok {
		return "", fmt.Errorf("mock: unknown table %s", table)
	}
	if t.PrimaryKey == "" {
		return "", ErrNoPrimaryKey
	}
	return t.PrimaryKey, nil
}

func (m *MockCatalog) OutgoingForeignKeys(_ context.Context, table string) ([]schema.ForeignKeyEdge, error) {
	if m.FKErr != nil {
		return nil, m.FKErr
	}
	m.Expanded = append(m.Expanded, table)
	t, ok := m.Tables[table]
	if !ok {
		return nil, fmt.Errorf("mock: unknown table %s", table)
	}
	return t.ForeignKeys, nil
}

// compile-time interface check
var _ Catalog = (*MockCatalog)(nil)
