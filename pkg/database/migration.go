package database

import (
	"fmt"
	"strings"

	"github.com/shuldan/underc0de-admin/pkg/contracts"
)

type BaseMigration struct {
	id          string
	description string
	upQueries   []string
	downQueries []string
}

func NewMigration(id, description string) *BaseMigration {
	return &BaseMigration{
		id:          id,
		description: description,
		upQueries:   []string{},
		downQueries: []string{},
	}
}

func (m *BaseMigration) ID() string {
	return m.id
}

func (m *BaseMigration) Description() string {
	return m.description
}

func (m *BaseMigration) Up() []string {
	return m.upQueries
}

func (m *BaseMigration) Down() []string {
	return m.downQueries
}

func (m *BaseMigration) AddUp(query string) *BaseMigration {
	m.upQueries = append(m.upQueries, query)
	return m
}

// AddDown prepends, so down queries undo the up queries in reverse order.
func (m *BaseMigration) AddDown(query string) *BaseMigration {
	m.downQueries = append([]string{query}, m.downQueries...)
	return m
}

type MigrationBuilder struct {
	migration *BaseMigration
}

func CreateMigration(id, description string) *MigrationBuilder {
	return &MigrationBuilder{
		migration: NewMigration(id, description),
	}
}

func (b *MigrationBuilder) CreateTable(tableName string, columns ...string) *MigrationBuilder {
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		tableName, strings.Join(columns, ",\n    "))
	b.migration.AddUp(query)
	b.migration.AddDown(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName))
	return b
}

func (b *MigrationBuilder) CreateIndex(indexName, tableName string, columns ...string) *MigrationBuilder {
	query := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
		indexName, tableName, strings.Join(columns, ", "))
	b.migration.AddUp(query)
	b.migration.AddDown(fmt.Sprintf("DROP INDEX %s", indexName))
	return b
}

func (b *MigrationBuilder) AddColumn(tableName, columnDef string) *MigrationBuilder {
	b.migration.AddUp(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", tableName, columnDef))

	columnName := strings.Fields(columnDef)[0]
	b.migration.AddDown(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", tableName, columnName))
	return b
}

func (b *MigrationBuilder) Raw(upQuery, downQuery string) *MigrationBuilder {
	b.migration.AddUp(upQuery)
	b.migration.AddDown(downQuery)
	return b
}

func (b *MigrationBuilder) Build() contracts.Migration {
	return b.migration
}
