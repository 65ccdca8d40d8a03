package grammar

import (
	"regexp"
	"strings"
)

// The recognizer classifies a text fragment into exactly one of seven
// syntactic productions. All anchored expressions must consume the whole
// fragment; ruleRE alone is used unanchored to detect embedded rule
// references in free text.
//
// Rule names and action keys are alphanumeric. Modifier tokens may contain
// any character except '.' and '#', so parametric forms like
// replace(a,b) and names like pop!! are single tokens.
//
// The action-group prefix in ruleRE is greedy, so two adjacent
// action-bearing references in free text, as in "#[a:x]r# #[b:y]s#", are
// consumed as one reference and the inner brackets surface verbatim.
// Keep each action-bearing reference in its own fragment to avoid this.
var (
	ruleRE                = regexp.MustCompile(`#(?:\[.*\])*([[:alnum:]]+)((?:\.[^.#]+)*)#`)
	onlyRuleRE            = regexp.MustCompile(`^#([[:alnum:]]+)((?:\.[^.#]+)*)#$`)
	onlyRuleWithActionsRE = regexp.MustCompile(`^#((?:\[.*\])+)([[:alnum:]]+)((?:\.[^.#]+)*)#$`)
	keylessRuleActionRE   = regexp.MustCompile(`^\[(#[[:alnum:]]+(?:\.[^.#]+)*#)\]$`)
	keyWithRuleActionRE   = regexp.MustCompile(`^\[([[:alnum:]]+):(#[[:alnum:]]+(?:\.[^.#]+)*#)\]$`)
	keyWithTextActionRE   = regexp.MustCompile(`^\[([[:alnum:]]+):([^#\]]*)\]$`)
	onlyActionsRE         = regexp.MustCompile(`^(?:\[[^\]]*\])+$`)
	actionRE              = regexp.MustCompile(`\[[^\]]*\]`)
	parametricRE          = regexp.MustCompile(`^([^(]+)\(([^)]*)\)$`)
)

// production identifies the syntactic category of a fragment.
type production int

const (
	// prodComplete marks fragments with no rule reference and no action
	// group; they are raw output text and are never expanded.
	prodComplete production = iota

	// prodOnlyRule is a single rule reference: #name(.modifier)*#
	prodOnlyRule

	// prodOnlyRuleWithActions is a rule reference with one or more leading
	// action groups: #(action)+name(.modifier)*#
	prodOnlyRuleWithActions

	// prodKeylessRuleAction is a single action group containing only a rule
	// reference: [#name(.modifier)*#]
	prodKeylessRuleAction

	// prodKeyWithRuleAction binds a key to a rule expansion: [key:#name#]
	prodKeyWithRuleAction

	// prodKeyWithTextAction binds a key to literal text or a literal
	// comma-separated list: [key:text] or [key:a,b,c]
	prodKeyWithTextAction

	// prodOnlyActions is one or more back-to-back action groups.
	prodOnlyActions

	// prodMixedText is free text with embedded rule references.
	prodMixedText
)

// String returns a string representation of the production.
func (p production) String() string {
	switch p {
	case prodComplete:
		return "Complete"
	case prodOnlyRule:
		return "OnlyRule"
	case prodOnlyRuleWithActions:
		return "OnlyRuleWithActions"
	case prodKeylessRuleAction:
		return "KeylessRuleAction"
	case prodKeyWithRuleAction:
		return "KeyWithRuleAction"
	case prodKeyWithTextAction:
		return "KeyWithTextAction"
	case prodOnlyActions:
		return "OnlyActions"
	case prodMixedText:
		return "MixedText"
	default:
		return "Unknown"
	}
}

// containsRule reports whether the fragment contains a rule reference
// anywhere. Unlike the anchored productions, this is a search predicate used
// to decide completeness of arbitrary free text.
func containsRule(text string) bool {
	return ruleRE.MatchString(text)
}

// classify determines the syntactic production of a fragment.
// The checks run in priority order; the first match wins.
func classify(text string) production {
	switch {
	case onlyRuleRE.MatchString(text):
		return prodOnlyRule
	case onlyRuleWithActionsRE.MatchString(text):
		return prodOnlyRuleWithActions
	case keylessRuleActionRE.MatchString(text):
		return prodKeylessRuleAction
	case keyWithRuleActionRE.MatchString(text):
		return prodKeyWithRuleAction
	case keyWithTextActionRE.MatchString(text):
		return prodKeyWithTextAction
	case onlyActionsRE.MatchString(text):
		return prodOnlyActions
	case containsRule(text):
		return prodMixedText
	default:
		return prodComplete
	}
}

// splitModifiers splits the modifier suffix of a rule reference, such as
// ".a.replace(x,y)", into its individual tokens. An empty suffix yields nil.
func splitModifiers(suffix string) []string {
	if suffix == "" {
		return nil
	}

	return strings.Split(strings.TrimPrefix(suffix, "."), ".")
}

// parseModifier splits a single modifier token into its name and ordered
// parameter list when it has the parametric form name(p1,p2,...).
// Absence of parentheses, and the literal empty form name(), both mean zero
// parameters.
func parseModifier(token string) (string, []string) {
	m := parametricRE.FindStringSubmatch(token)
	if m == nil {
		return token, nil
	}

	if m[2] == "" {
		return m[1], nil
	}

	return m[1], strings.Split(m[2], ",")
}

// splitActions splits a fragment matched by the only-actions production into
// its individual bracketed action groups, in left-to-right order.
func splitActions(text string) []string {
	return actionRE.FindAllString(text, -1)
}

// splitMixed splits free text containing embedded rule references into
// alternating literal-text and rule-reference segments, preserving order and
// dropping empty segments.
func splitMixed(text string) []string {
	var segments []string

	last := 0

	for _, loc := range ruleRE.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, text[last:loc[0]])
		}

		segments = append(segments, text[loc[0]:loc[1]])
		last = loc[1]
	}

	if last < len(text) {
		segments = append(segments, text[last:])
	}

	return segments
}
