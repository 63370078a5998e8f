package blockdoc_test

import (
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTechnical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want blockdoc.TechnicalRule
	}{
		{"absolute URL", "https://my-instance.example.com", blockdoc.RuleURL},
		{"URL inside text", "open http://localhost:8080/admin now", blockdoc.RuleURL},
		{"unix path", "/etc/nginx/nginx.conf", blockdoc.RulePath},
		{"home path", "~/.config/app", blockdoc.RulePath},
		{"windows path", `C:\Windows\System32`, blockdoc.RulePath},
		{"relative multi-segment path", "src/main/resources", blockdoc.RulePath},
		{"placeholder", "<instance-name>", blockdoc.RulePlaceholder},
		{"bare domain", "docs.example.com", blockdoc.RuleDomain},
		{"dotted identifier", "g_form.setValue", blockdoc.RuleDotted},
		{"constant", "MAX_RETRY_COUNT", blockdoc.RuleConstant},
		{"code punctuation", "getUser(id)", blockdoc.RulePunctuation},
		{"assignment", "debug=true", blockdoc.RulePunctuation},
		{"snake case", "user_name", blockdoc.RuleIdentifier},
		{"camel case", "userName", blockdoc.RuleIdentifier},
		{"button label", "Save", blockdoc.RuleNone},
		{"short UI word", "OK", blockdoc.RuleNone},
		{"UI phrase", "Cancel and return", blockdoc.RuleNone},
		{"menu path prose", "File and Edit", blockdoc.RuleNone},
		{"empty", "   ", blockdoc.RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, blockdoc.ClassifyTechnical(tt.in))
		})
	}
}

func TestIsTechnical(t *testing.T) {
	t.Parallel()

	assert.True(t, blockdoc.IsTechnical("https://my-instance.example.com"))
	assert.False(t, blockdoc.IsTechnical("Save"))
}
