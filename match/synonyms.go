package match

// SynonymGroup declares one equivalence class of business vocabulary.
// Expansion is bidirectional: any member of the class pulls in every other
// member, so "client" reaches "customer" just as "customer" reaches "client".
type SynonymGroup struct {
	Head     string   `yaml:"head"`
	Synonyms []string `yaml:"synonyms"`
}

// SynonymTable is an ordered list of equivalence classes. Lookup scans in
// declaration order, so a token listed in two classes resolves to the first;
// keep classes disjoint.
type SynonymTable []SynonymGroup

// DefaultSynonyms returns the built-in business vocabulary table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		{Head: "customer", Synonyms: []string{"client", "user", "consumer", "buyer", "patron", "clientele"}},
		{Head: "feedback", Synonyms: []string{"review", "comment", "opinion", "suggestion", "input", "response"}},
		{Head: "support", Synonyms: []string{"help", "assistance", "service", "aid", "care", "helpdesk"}},
		{Head: "analysis", Synonyms: []string{"analytics", "examination", "evaluation", "assessment", "insights"}},
		{Head: "insight", Synonyms: []string{"understanding", "knowledge", "intelligence", "perception", "wisdom"}},
		{Head: "automation", Synonyms: []string{"automatic", "automated", "ai", "machine", "bot", "smart"}},
		{Head: "integration", Synonyms: []string{"connection", "linking", "combining", "merging", "sync"}},
		{Head: "dashboard", Synonyms: []string{"interface", "panel", "view", "display", "screen", "console"}},
		{Head: "survey", Synonyms: []string{"poll", "questionnaire", "form", "quiz", "inquiry"}},
		{Head: "engagement", Synonyms: []string{"interaction", "participation", "involvement", "activity"}},
		{Head: "personalization", Synonyms: []string{"customization", "tailoring", "individualization", "custom"}},
		{Head: "workflow", Synonyms: []string{"process", "procedure", "flow", "operation", "pipeline"}},
		{Head: "real-time", Synonyms: []string{"live", "instant", "immediate", "current", "realtime"}},
		{Head: "tracking", Synonyms: []string{"monitoring", "following", "observing", "watching", "surveillance"}},
	}
}

// group returns the first class containing token, or nil.
func (t SynonymTable) group(token string) *SynonymGroup {
	for i := range t {
		if t[i].Head == token {
			return &t[i]
		}
		for _, syn := range t[i].Synonyms {
			if syn == token {
				return &t[i]
			}
		}
	}
	return nil
}

// Variants returns token plus every term the table equates with it, token
// first, remaining class members in declaration order. Tokens outside the
// table return a single-element slice.
func (t SynonymTable) Variants(token string) []string {
	variants := []string{token}
	g := t.group(token)
	if g == nil {
		return variants
	}
	if g.Head != token {
		variants = append(variants, g.Head)
	}
	for _, syn := range g.Synonyms {
		if syn != token {
			variants = append(variants, syn)
		}
	}
	return variants
}

// Expand appends every equivalent of every token to a copy of tokens,
// deduplicated, originals first. Originals are never replaced: exact matching
// needs them verbatim while expansion-aware layers read the tail.
func (t SynonymTable) Expand(tokens []string) []string {
	expanded := make([]string, 0, len(tokens)*2)
	seen := make(map[string]bool, len(tokens)*2)
	for _, token := range tokens {
		if seen[token] {
			continue
		}
		seen[token] = true
		expanded = append(expanded, token)
	}
	for _, token := range tokens {
		for _, variant := range t.Variants(token)[1:] {
			if seen[variant] {
				continue
			}
			seen[variant] = true
			expanded = append(expanded, variant)
		}
	}
	return expanded
}
