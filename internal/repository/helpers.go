// Package repository implements data access against the document store.
package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// normalizeRecordID ensures id refers to a record of the given table,
// accepting either the bare ID part or the full "table:id" form. Returns
// false when the id names a different table; a path parameter must never
// reach another table's records.
func normalizeRecordID(table, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if i := strings.IndexByte(id, ':'); i >= 0 {
		if id[:i] != table {
			return "", false
		}
		return id, true
	}
	return table + ":" + id, true
}

// convertSurrealID normalizes SurrealDB's record ID representations to the
// "table:id" string form used throughout the app
func convertSurrealID(id interface{}) string {
	if str, ok := id.(string); ok {
		return str
	}

	if rid, ok := id.(models.RecordID); ok {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}
	if rid, ok := id.(*models.RecordID); ok && rid != nil {
		return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
	}

	// Handle map format: {"tb": "campground", "id": "xxx"} or similar
	if m, ok := id.(map[string]interface{}); ok {
		tb := getString(m, "tb")
		idPart := ""
		if idVal, ok := m["id"]; ok {
			idPart = convertSurrealID(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	// JSON round-trip as a last resort
	if data, err := json.Marshal(id); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil {
			return rid.String()
		}
	}

	return ""
}

// extractQueryResults unwraps the {status, result} response wrapper around a
// result set
func extractQueryResults(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if resp, ok := result[0].(map[string]interface{}); ok {
		if resultArray, ok := resp["result"].([]interface{}); ok {
			return resultArray
		}
	}
	return result
}

// extractCreatedID pulls the generated record ID out of a CREATE result
func extractCreatedID(result []interface{}) string {
	records := extractQueryResults(result)
	if len(records) == 0 {
		return ""
	}
	if data, ok := records[0].(map[string]interface{}); ok {
		return convertSurrealID(data["id"])
	}
	return ""
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return 0
}

func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}
