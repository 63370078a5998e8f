package blockdoc

import (
	"regexp"
	"strings"
)

// TechnicalRule names the rule that classified a span as technical.
type TechnicalRule string

// TechnicalRule constants, in priority order.
const (
	RuleNone        TechnicalRule = ""
	RuleURL         TechnicalRule = "url"
	RulePath        TechnicalRule = "path"
	RulePlaceholder TechnicalRule = "placeholder"
	RuleDomain      TechnicalRule = "domain"
	RuleDotted      TechnicalRule = "dotted"
	RuleConstant    TechnicalRule = "constant"
	RulePunctuation TechnicalRule = "punctuation"
	RuleIdentifier  TechnicalRule = "identifier"
)

var (
	urlRe         = regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*://[^\s]+`)
	pathRe        = regexp.MustCompile(`^(?:~?/|\.{1,2}/|[A-Za-z]:\\|\\\\)[^\s]*$|^[\w.-]+(?:/[\w.*-]+){2,}/?$`)
	placeholderRe = regexp.MustCompile(`<[A-Za-z_][^<>]*>`)
	domainRe      = regexp.MustCompile(`(?i)^(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}(?::\d+)?(?:/[^\s]*)?$`)
	dottedRe      = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)+(?:\(\))?$`)
	constantRe    = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`)
	snakeRe       = regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)+$`)
	camelRe       = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)+$`)
)

// codeChars are characters that rarely occur in UI labels but are common in
// code, queries and configuration values.
const codeChars = "(){}[]=;|`$\\^~"

// IsTechnical reports whether s reads as technical content (paths, URLs,
// placeholders, identifiers, constants or code) rather than UI prose.
func IsTechnical(s string) bool {
	return ClassifyTechnical(s) != RuleNone
}

// ClassifyTechnical returns the first rule that classifies s as technical,
// or RuleNone for plain prose such as button labels.
func ClassifyTechnical(s string) TechnicalRule {
	s = strings.TrimSpace(s)
	if s == "" {
		return RuleNone
	}
	switch {
	case urlRe.MatchString(s):
		return RuleURL
	case pathRe.MatchString(s):
		return RulePath
	case placeholderRe.MatchString(s):
		return RulePlaceholder
	case domainRe.MatchString(s):
		return RuleDomain
	case dottedRe.MatchString(s):
		return RuleDotted
	case constantRe.MatchString(s):
		return RuleConstant
	case strings.ContainsAny(s, codeChars) || strings.Contains(s, "->") || strings.Contains(s, "::"):
		return RulePunctuation
	case snakeRe.MatchString(s) || camelRe.MatchString(s):
		return RuleIdentifier
	}
	return RuleNone
}
