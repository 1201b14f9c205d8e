package sarif

import (
	"encoding/json"
	"strings"
)

// unsetIndexKeys are SARIF integer properties whose default -1 means "not set".
var unsetIndexKeys = map[string]bool{
	"index":          true,
	"ruleIndex":      true,
	"parentIndex":    true,
	"executionOrder": true,
	"id":             true,
	"rank":           true,
}

// dropUnsetIndexes removes negative values of unsetIndexKeys from a generic JSON tree.
func dropUnsetIndexes(node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if unsetIndexKeys[key] && isNegativeNumber(value) {
				delete(v, key)
				continue
			}
			dropUnsetIndexes(value)
		}
	case []interface{}:
		for _, item := range v {
			dropUnsetIndexes(item)
		}
	}
}

func isNegativeNumber(value interface{}) bool {
	n, ok := value.(json.Number)
	return ok && strings.HasPrefix(n.String(), "-")
}

// ruleCategoriesFromTree reads runs[].tool.driver.rules[].relationships[].target, keeping
// the target id or, failing that, its guid. Entries that are not objects yield no categories.
func ruleCategoriesFromTree(tree interface{}) [][][]string {
	runs := arrayField(asObject(tree), "runs")
	categories := make([][][]string, len(runs))

	for i, run := range runs {
		driver := asObject(asObject(asObject(run)["tool"])["driver"])
		rules := arrayField(driver, "rules")
		categories[i] = make([][]string, len(rules))

		for j, rule := range rules {
			for _, relationship := range arrayField(asObject(rule), "relationships") {
				target := asObject(asObject(relationship)["target"])
				id, _ := target["id"].(string)
				if id == "" {
					id, _ = target["guid"].(string)
				}
				if id != "" {
					categories[i][j] = append(categories[i][j], id)
				}
			}
		}
	}
	return categories
}

func asObject(value interface{}) map[string]interface{} {
	object, _ := value.(map[string]interface{})
	return object
}

func arrayField(object map[string]interface{}, key string) []interface{} {
	array, _ := object[key].([]interface{})
	return array
}
