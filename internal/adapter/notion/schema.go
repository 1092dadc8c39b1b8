package notion

import (
	"context"
	"net/http"
	"strings"
)

// propertySchema is the subset of a database property this service needs.
type propertySchema struct {
	Type string `json:"type"`
}

type database struct {
	Properties map[string]propertySchema `json:"properties"`
}

// getDatabase fetches the destination schema. It is fetched fresh on every
// publish so a renamed or retyped property is picked up without a restart.
func (c *Client) getDatabase(ctx context.Context) (*database, error) {
	var db database
	url := c.baseURL + "/v1/databases/" + c.cfg.NotionDatabaseID
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// findTitleProperty returns the name of the title-typed property. The
// destination mandates exactly one per database, so its absence means the
// database cannot hold pages at all.
func findTitleProperty(db *database) (string, bool) {
	for name, prop := range db.Properties {
		if prop.Type == "title" {
			return name, true
		}
	}
	return "", false
}

// findPropertyByName resolves a property by exact name first, then by a
// trimmed case-insensitive match, requiring the expected type either way.
func findPropertyByName(db *database, name, propType string) (string, bool) {
	if prop, ok := db.Properties[name]; ok && prop.Type == propType {
		return name, true
	}
	target := strings.ToLower(strings.TrimSpace(name))
	for key, prop := range db.Properties {
		if strings.ToLower(strings.TrimSpace(key)) == target && prop.Type == propType {
			return key, true
		}
	}
	return "", false
}
