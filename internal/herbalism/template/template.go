// Package template resolves choice placeholders in effect descriptions.
//
// A description template embeds placeholders in curly braces. Three
// forms exist:
//
//   - {potency}: reserved; replaced with the stacked-effect count.
//   - {a|b|c}: an enumerated choice between the listed options.
//   - {anything else}: a free-text choice named by its content.
//
// A placeholder's name is its literal brace content, so the same
// placeholder appearing in two different effect descriptions is one
// logical choice, not two.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/louisbranch/verdant-engine/internal/herbalism/domain"
)

// PotencyName is the reserved placeholder for stacked-effect scaling.
const PotencyName = "potency"

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Variable is one distinct choice a player must resolve.
// Options is nil for free-text placeholders.
type Variable struct {
	Name    string
	Options []string
}

// ParseVariables scans a template and returns the distinct placeholders
// in order of first appearance, deduplicated by name. The reserved
// potency placeholder is excluded: it is resolved by the engine, not
// the player.
func ParseVariables(text string) []Variable {
	var variables []Variable
	seen := make(map[string]bool)

	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if name == PotencyName || seen[name] {
			continue
		}
		seen[name] = true

		variable := Variable{Name: name}
		if strings.Contains(name, "|") {
			variable.Options = strings.Split(name, "|")
		}
		variables = append(variables, variable)
	}

	return variables
}

// EffectVariables collects the distinct variables across all active
// effects' templates, preserving order of first appearance.
func EffectVariables(effects []domain.PairedEffect) []Variable {
	var variables []Variable
	seen := make(map[string]bool)

	for _, effect := range effects {
		for _, variable := range ParseVariables(effect.Recipe.Template) {
			if seen[variable.Name] {
				continue
			}
			seen[variable.Name] = true
			variables = append(variables, variable)
		}
	}

	return variables
}

// AllChoicesMade reports whether every variable has a resolved value.
func AllChoicesMade(variables []Variable, choices map[string]string) bool {
	for _, variable := range variables {
		if _, ok := choices[variable.Name]; !ok {
			return false
		}
	}
	return true
}

// Fill substitutes every placeholder in the template. Potency is the
// stacked-effect count ("deals {potency}d6 damage" scales with how many
// times the effect was paired). Callers gate on AllChoicesMade before
// the terminal phase, so substitution here is total.
func Fill(text string, potency int, choices map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[1 : len(token)-1]
		if name == PotencyName {
			return strconv.Itoa(potency)
		}
		if value, ok := choices[name]; ok {
			return value
		}
		return token
	})
}

// Describe computes the filled description for each effect, with
// potency bound to the effect's pairing count. Descriptions are
// computed once per brew: a batch's output is uniform in kind and
// differs only in produced quantity.
func Describe(effects []domain.PairedEffect, choices map[string]string) []string {
	descriptions := make([]string, 0, len(effects))
	for _, effect := range effects {
		descriptions = append(descriptions, Fill(effect.Recipe.Template, effect.Count, choices))
	}
	return descriptions
}
