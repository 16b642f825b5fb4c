// Package sqlcatalog serves the named-query catalog: parameterized SQL text
// plus its declared input and output fields, looked up by (group, name).
// Statements ship embedded; inputs bind positionally in declaration order.
package sqlcatalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/larderhq/larder/pkg/apperr"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

//go:embed statements.json
var statementsJSON []byte

// Statement is one catalog entry.
type Statement struct {
	Name    string   `json:"name"`
	Query   string   `json:"query"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

type Catalog struct {
	groups map[string][]Statement
}

// Module provides the embedded catalog.
var Module = fx.Provide(NewCatalog)

func NewCatalog() (*Catalog, error) {
	var groups map[string][]Statement
	if err := json.Unmarshal(statementsJSON, &groups); err != nil {
		return nil, fmt.Errorf("parse embedded statements: %w", err)
	}
	return &Catalog{groups: groups}, nil
}

// Get returns the statement registered under (group, name).
func (c *Catalog) Get(group, name string) (Statement, error) {
	for _, stmt := range c.groups[group] {
		if stmt.Name == name {
			return stmt, nil
		}
	}
	return Statement{}, apperr.NotFound("no such query")
}

// Groups lists the catalog contents for discovery.
func (c *Catalog) Groups() map[string][]Statement {
	return c.groups
}

// Execute looks up a statement, binds params by the statement's declared
// input order, and runs it on db. Statements with declared outputs return
// row maps; others return nil on success.
func (c *Catalog) Execute(ctx context.Context, db *gorm.DB, group, name string, params map[string]any) ([]map[string]any, error) {
	stmt, err := c.Get(group, name)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(stmt.Inputs))
	for _, input := range stmt.Inputs {
		value, ok := params[input]
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("missing query input %q", input))
		}
		args = append(args, value)
	}

	if len(stmt.Outputs) == 0 {
		return nil, db.WithContext(ctx).Exec(stmt.Query, args...).Error
	}

	var rows []map[string]any
	if err := db.WithContext(ctx).Raw(stmt.Query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
