package sarif

import (
	"fmt"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const (
	unknownRule     = "Unknown rule"
	unknownLocation = "Unknown location"
	unknownFile     = "Unknown file"

	tagsProperty = "tags"
)

// Issue is the rendered view of one SARIF result.
// A single Issue is shared by every category the result belongs to and must not be modified.
type Issue struct {
	Severity        string
	RuleID          string
	RuleDescription string
	Message         string
	Location        string
	HelpURI         string
	Tags            []string
}

// Category groups issues under one relationship target.
type Category struct {
	ID     string
	Label  string
	Issues []*Issue
}

// Collection is everything the renderer needs from a document.
type Collection struct {
	// Counts maps a severity label to the number of results with it.
	Counts map[string]int
	// Categories is ordered by first appearance.
	Categories []*Category
	Total      int
}

// Collect walks every run and result in order, grouping issues by category and counting severities.
func Collect(runs []*Run) *Collection {
	c := &Collection{Counts: map[string]int{}}
	byID := map[string]*Category{}

	for _, run := range runs {
		if run == nil || run.Run == nil {
			continue
		}
		rules := BuildRuleIndex(run)

		for _, result := range run.Results {
			if result == nil {
				continue
			}
			ruleID := stringValue(result.RuleID)
			rule, ok := rules[ruleID]
			if !ok {
				rule = &RuleInfo{ID: ruleID}
			}

			severity := NormalizeSeverity(result, rule)
			c.Counts[severity]++
			c.Total++

			issue := newIssue(result, rule, severity)

			categoryIDs := rule.Categories
			if len(categoryIDs) == 0 {
				categoryIDs = []string{UncategorizedID}
			}
			for _, id := range categoryIDs {
				category, ok := byID[id]
				if !ok {
					category = &Category{ID: id, Label: HumanizeCategory(id)}
					byID[id] = category
					c.Categories = append(c.Categories, category)
				}
				category.Issues = append(category.Issues, issue)
			}
		}
	}

	return c
}

func newIssue(result *sarif.Result, rule *RuleInfo, severity string) *Issue {
	issue := &Issue{
		Severity:        severity,
		RuleID:          rule.ID,
		RuleDescription: rule.Description(),
		Message:         stringValue(result.Message.Text),
		HelpURI:         rule.HelpURI,
		Tags:            resultTags(result.Properties),
	}
	if issue.RuleID == "" {
		issue.RuleID = unknownRule
	}

	var first *sarif.Location
	if len(result.Locations) > 0 {
		first = result.Locations[0]
	}
	issue.Location = FormatLocation(first)

	return issue
}

// FormatLocation renders "file" or "file:line"; the line is shown only when the region declares a start line.
func FormatLocation(location *sarif.Location) string {
	if location == nil || location.PhysicalLocation == nil {
		return unknownLocation
	}

	physical := location.PhysicalLocation
	file := ""
	if physical.ArtifactLocation != nil {
		file = stringValue(physical.ArtifactLocation.URI)
	}
	if file == "" {
		file = unknownFile
	}

	if physical.Region != nil && physical.Region.StartLine != nil && *physical.Region.StartLine != 0 {
		return fmt.Sprintf("%s:%d", file, *physical.Region.StartLine)
	}
	return file
}

// resultTags reads the "tags" property. Anything other than a JSON array yields no tags.
func resultTags(props sarif.Properties) []string {
	raw, ok := props[tagsProperty].([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		switch v := tag.(type) {
		case string:
			tags = append(tags, v)
		case nil:
			tags = append(tags, "")
		default:
			tags = append(tags, fmt.Sprint(v))
		}
	}
	return tags
}
