package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlColumn/yamlTable/yamlFile mirror Schema's constructor inputs in
// a plain, hand-editable YAML shape — the file format
// `schemacompress compress <schema.yaml>` reads.
type yamlColumn struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Annotations []string `yaml:"annotations,omitempty"`
}

type yamlTable struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

type yamlPrimaryKey struct {
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns"`
}

type yamlForeignKey struct {
	FromTable   string   `yaml:"from_table"`
	FromColumns []string `yaml:"from_columns"`
	ToTable     string   `yaml:"to_table"`
	ToColumns   []string `yaml:"to_columns"`
}

type yamlFile struct {
	Tables      []yamlTable      `yaml:"tables"`
	PrimaryKeys []yamlPrimaryKey `yaml:"primary_keys,omitempty"`
	ForeignKeys []yamlForeignKey `yaml:"foreign_keys,omitempty"`
}

// LoadYAML reads a schema description from path and builds a Schema
// via New, so the same single-column PK/FK absorption rules apply
// regardless of whether the caller came from YAML, DDL, or a live
// introspection.
func LoadYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied schema file path
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}

	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", path, err)
	}

	tables := make([]Table, len(f.Tables))
	for i, t := range f.Tables {
		cols := make([]Column, len(t.Columns))
		for j, c := range t.Columns {
			cols[j] = Column{Name: c.Name, Type: c.Type, Annotations: c.Annotations}
		}
		tables[i] = Table{Name: t.Name, Columns: cols}
	}

	pkeys := make([]PrimaryKey, len(f.PrimaryKeys))
	for i, pk := range f.PrimaryKeys {
		pkeys[i] = PrimaryKey{Table: pk.Table, Columns: pk.Columns}
	}

	fkeys := make([]ForeignKey, len(f.ForeignKeys))
	for i, fk := range f.ForeignKeys {
		fkeys[i] = ForeignKey{
			FromTable:   fk.FromTable,
			FromColumns: fk.FromColumns,
			ToTable:     fk.ToTable,
			ToColumns:   fk.ToColumns,
		}
	}

	return New(tables, pkeys, fkeys), nil
}
