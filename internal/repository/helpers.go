package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordID qualifies a bare key with its table ("abc" -> "coffee:abc")
func recordID(table, id string) string {
	if strings.Contains(id, ":") {
		return id
	}
	return table + ":" + id
}

// belongsTo reports whether a record id points into table
func belongsTo(table, id string) bool {
	return strings.HasPrefix(recordID(table, id), table+":")
}

// convertSurrealID renders any SurrealDB id representation as "table:key"
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
		return ""
	case map[string]interface{}:
		// {"tb": "coffee", "id": {"String": "abc"}} and similar
		tb := ""
		for _, key := range []string{"tb", "TB", "Table"} {
			if t, ok := v[key].(string); ok {
				tb = t
				break
			}
		}
		idPart := ""
		if idVal, ok := v["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := v["ID"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// parseTime parses time from the shapes SurrealDB hands back
func parseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	case models.CustomDateTime:
		return t.Time, true
	case *models.CustomDateTime:
		if t != nil {
			return t.Time, true
		}
	}
	return time.Time{}, false
}

// statementRecords flattens the records of every statement in a Query response
func statementRecords(result []interface{}) []interface{} {
	records := make([]interface{}, 0)
	for _, res := range result {
		resp, ok := res.(map[string]interface{})
		if !ok {
			continue
		}
		if items, ok := resp["result"].([]interface{}); ok {
			records = append(records, items...)
		}
	}
	return records
}

// parseRecords maps every record in a Query response, skipping ones that do not parse
func parseRecords[T any](result []interface{}, parse func(interface{}) (T, error)) []T {
	records := statementRecords(result)
	out := make([]T, 0, len(records))
	for _, item := range records {
		parsed, err := parse(item)
		if err != nil {
			continue
		}
		out = append(out, parsed)
	}
	return out
}

type createdRecord struct {
	ID        string
	CreatedOn time.Time
}

func extractCreatedRecord(result []interface{}) (*createdRecord, error) {
	records := statementRecords(result)
	if len(records) == 0 {
		return nil, errors.New("no result returned")
	}

	data, ok := records[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	record := &createdRecord{ID: convertSurrealID(data["id"])}
	if t, ok := parseTime(data["created_on"]); ok {
		record.CreatedOn = t
	}
	return record, nil
}

// extractCount reads the count column of a GROUP ALL query record
func extractCount(result interface{}) int {
	if data, ok := result.(map[string]interface{}); ok {
		return getInt(data, "count")
	}
	return 0
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// getInt extracts an int value from a map
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

// getFloat extracts a float value from a map
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

// getTime extracts a time value from a map, zero when absent
func getTime(m map[string]interface{}, key string) time.Time {
	t, _ := parseTime(m[key])
	return t
}

// getIDSlice extracts a list of string or record ids
func getIDSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(v))
	for _, item := range v {
		if id := convertSurrealID(item); id != "" {
			result = append(result, id)
		}
	}
	return result
}

// optionalFields adds non-nil optional values to a CONTENT map so unset
// fields stay NONE instead of NULL.
func optionalFields(content map[string]interface{}, fields map[string]*string) {
	for key, value := range fields {
		if value != nil {
			content[key] = *value
		}
	}
}
