package sarif

import "github.com/owenrumney/go-sarif/v2/sarif"

// RuleInfo is the rule metadata a report needs, flattened from a reporting descriptor.
type RuleInfo struct {
	ID               string
	ShortDescription string
	FullDescription  string
	HelpURI          string
	DefaultLevel     string
	Categories       []string
}

// Description prefers the short description over the full one.
func (r *RuleInfo) Description() string {
	if r.ShortDescription != "" {
		return r.ShortDescription
	}
	return r.FullDescription
}

// BuildRuleIndex maps rule ids of a single run to their metadata.
// A run without a driver or rules yields an empty index.
func BuildRuleIndex(run *Run) map[string]*RuleInfo {
	index := map[string]*RuleInfo{}
	if run == nil || run.Run == nil || run.Tool.Driver == nil {
		return index
	}

	for i, rule := range run.Tool.Driver.Rules {
		if rule == nil {
			continue
		}
		info := &RuleInfo{
			ID:               rule.ID,
			ShortDescription: messageText(rule.ShortDescription),
			FullDescription:  messageText(rule.FullDescription),
			HelpURI:          stringValue(rule.HelpURI),
			Categories:       run.categoriesOf(i),
		}
		if info.HelpURI == "" {
			info.HelpURI = messageText(rule.Help)
		}
		if rule.DefaultConfiguration != nil {
			info.DefaultLevel = rule.DefaultConfiguration.Level
		}
		index[rule.ID] = info
	}

	return index
}

func (r *Run) categoriesOf(rule int) []string {
	if rule >= len(r.RuleCategories) {
		return nil
	}
	return r.RuleCategories[rule]
}

func messageText(m *sarif.MultiformatMessageString) string {
	if m == nil {
		return ""
	}
	return stringValue(m.Text)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
