package match

// GeneralIntent is the fallback intent for queries whose expanded tokens
// overlap no intent category's keyword set. It maps to no domain.
const GeneralIntent = "general"

// IntentCategory declares one coarse query intent: the keyword set that
// signals it, and the catalog categories and subcategories it maps to for
// domain scoring. Declaration order doubles as the classification tie-break:
// of two categories matching the same number of keywords, the one declared
// first wins.
type IntentCategory struct {
	Name          string   `yaml:"name"`
	Keywords      []string `yaml:"keywords"`
	Categories    []string `yaml:"categories"`
	Subcategories []string `yaml:"subcategories,omitempty"`
}

// DefaultIntents returns the built-in intent taxonomy for customer-experience
// platforms.
func DefaultIntents() []IntentCategory {
	return []IntentCategory{
		{
			Name: "feedback_collection",
			Keywords: []string{
				"collect", "feedback", "gather", "opinion", "survey",
				"review", "collection", "customer", "input", "gathering", "mining",
			},
			Categories:    []string{"Voice of Customer"},
			Subcategories: []string{"Surveys", "Conversations"},
		},
		{
			Name: "customer_service",
			Keywords: []string{
				"support", "customer", "help", "desk", "care", "service",
				"quality", "resolve", "issue", "assistance", "ticket",
			},
			Categories:    []string{"AI Customer Service", "Customer 360"},
			Subcategories: []string{"AI Inbox"},
		},
		{
			Name: "data_analysis",
			Keywords: []string{
				"analyze", "data", "insights", "analytics", "reporting",
				"dashboard", "metrics", "kpi", "business", "intelligence", "visualization",
			},
			Categories:    []string{"Voice of Customer", "Insights", "Customer 360"},
			Subcategories: []string{"Experience"},
		},
		{
			Name: "automation",
			Keywords: []string{
				"automate", "automation", "automatic", "workflow", "powered",
				"streamline", "efficiency", "reduce", "manual", "work", "ai",
			},
			Categories:    []string{"AI Customer Service", "AI & Automation"},
			Subcategories: []string{"Workflows"},
		},
		{
			Name: "integration",
			Keywords: []string{
				"integrate", "integration", "system", "connect", "platform",
				"sync", "api", "third", "party", "external", "flow",
			},
			Categories:    []string{"AI & Automation"},
			Subcategories: []string{"Connectors"},
		},
	}
}

// classifyIntent picks the intent whose keyword set overlaps the most
// expanded query tokens. Only a strictly higher count displaces the current
// best, so ties keep the earlier category; zero overlap everywhere falls back
// to GeneralIntent.
func classifyIntent(expanded []string, intents []IntentCategory) string {
	set := tokenSet(expanded)
	best := 0
	name := GeneralIntent
	for _, intent := range intents {
		count := 0
		for _, keyword := range intent.Keywords {
			if set[keyword] {
				count++
			}
		}
		if count > best {
			best = count
			name = intent.Name
		}
	}
	return name
}

// intentByName returns the declared intent with the given name, or nil for
// GeneralIntent and unknown names.
func intentByName(intents []IntentCategory, name string) *IntentCategory {
	for i := range intents {
		if intents[i].Name == name {
			return &intents[i]
		}
	}
	return nil
}
