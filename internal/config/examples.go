package config

import (
	"sort"
	"strings"
)

// Example is a canned prompt shown as a clickable pill.
type Example struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// DisplayLabel falls back to the question text when no label is set.
func (e Example) DisplayLabel() string {
	if label := strings.TrimSpace(e.Label); label != "" {
		return label
	}
	return strings.TrimSpace(e.Text)
}

// Example set names.
const (
	PresetDocs   = "docs"
	PresetResume = "resume"
)

var presets = map[string][]Example{
	PresetDocs: {
		{Label: "Greeting", Text: "Hello"},
		{Label: "مرحبا", Text: "مرحبا"},
		{Label: "Overview", Text: "Tell me about these documents"},
		{Label: "أهداف", Text: "ما هي أبرز أهداف الوثيقة؟"},
		{Label: "Goals", Text: "What are the main strategic goals?"},
		{Label: "Indicators", Text: "What indicators are mentioned?"},
		{Label: "مؤشرات", Text: "ما هي المؤشرات الرئيسية؟"},
		{Label: "Vision", Text: "What is the vision or timeline?"},
		{Label: "رؤية", Text: "ما الرؤية والجدول الزمني؟"},
		{Label: "Initiatives", Text: "Key initiatives or pillars?"},
	},
	PresetResume: {
		{Label: "Greeting", Text: "Hello"},
		{Label: "Overview", Text: "Tell me about this resume"},
		{Label: "Skills", Text: "What are your key skills?"},
		{Label: "Languages", Text: "What programming languages do you know?"},
		{Label: "AI/ML", Text: "What AI/ML skills do you have?"},
		{Label: "Education", Text: "What is your educational background?"},
		{Label: "Experience", Text: "What work experience do you have?"},
		{Label: "Companies", Text: "What companies have you worked for?"},
		{Label: "Projects", Text: "What projects have you worked on?"},
		{Label: "Certifications", Text: "What certifications do you have?"},
		{Label: "Contact", Text: "What is your contact information?"},
		{Label: "Achievements", Text: "What are your achievements?"},
		{Label: "Strengths", Text: "What is your strongest skill?"},
		{Label: "Skills + education", Text: "What are your skills and education?"},
	},
}

// Presets lists the built-in example set names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExampleSetFor returns a copy of the named preset.
func ExampleSetFor(name string) ([]Example, bool) {
	set, ok := presets[foldName(name)]
	if !ok {
		return nil, false
	}
	return append([]Example(nil), set...), true
}

// ResolvedExamples returns the explicit example list, or the configured preset.
func (c Config) ResolvedExamples() []Example {
	if len(c.Examples) > 0 {
		return append([]Example(nil), c.Examples...)
	}
	set, _ := ExampleSetFor(c.ExampleSet)
	return set
}
