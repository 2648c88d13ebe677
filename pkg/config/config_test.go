package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfix/pkg/config"
)

func TestSeverityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityWarning.IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
	assert.False(t, config.Severity("").IsValid())
}

func TestNewRuleSet(t *testing.T) {
	t.Parallel()

	rs := config.NewRuleSet()

	assert.Equal(t, "default", rs.Flavor)
	assert.NotNil(t, rs.Rules)
	assert.Empty(t, rs.Rules)
	assert.False(t, rs.Fix)
	assert.Zero(t, rs.MaxPasses)
}

func TestRuleConfigOption(t *testing.T) {
	t.Parallel()

	rc := &config.RuleConfig{
		Options: map[string]any{
			"style":     "fenced",
			"br_spaces": 2,
		},
	}

	assert.Equal(t, "fenced", rc.Option("style", "indented"))
	assert.Equal(t, 2, rc.Option("br_spaces", 4))
	assert.Equal(t, "fallback", rc.Option("missing", "fallback"))
}

func TestRuleConfigOptionNilReceiver(t *testing.T) {
	t.Parallel()

	var rc *config.RuleConfig

	assert.Equal(t, 7, rc.Option("anything", 7))
	assert.Equal(t, 7, (&config.RuleConfig{}).Option("anything", 7))
}

func TestRuleSetYAML(t *testing.T) {
	t.Parallel()

	input := `
flavor: gfm
enable:
  - MD033
disable:
  - MD012
max_passes: 5
rules:
  MD009:
    enabled: true
    severity: error
    auto_fix: false
    options:
      br_spaces: 2
`

	var rs config.RuleSet
	require.NoError(t, yaml.Unmarshal([]byte(input), &rs))

	assert.Equal(t, "gfm", rs.Flavor)
	assert.Equal(t, []string{"MD033"}, rs.Enable)
	assert.Equal(t, []string{"MD012"}, rs.Disable)
	assert.Equal(t, 5, rs.MaxPasses)

	rc, ok := rs.Rules["MD009"]
	require.True(t, ok)
	require.NotNil(t, rc.Enabled)
	assert.True(t, *rc.Enabled)
	require.NotNil(t, rc.Severity)
	assert.Equal(t, "error", *rc.Severity)
	require.NotNil(t, rc.AutoFix)
	assert.False(t, *rc.AutoFix)
	assert.Equal(t, 2, rc.Option("br_spaces", 0))
}

func TestRuleSetYAMLUnsetFieldsStayNil(t *testing.T) {
	t.Parallel()

	var rs config.RuleSet
	require.NoError(t, yaml.Unmarshal([]byte("rules:\n  MD010: {}\n"), &rs))

	rc := rs.Rules["MD010"]
	assert.Nil(t, rc.Enabled)
	assert.Nil(t, rc.Severity)
	assert.Nil(t, rc.AutoFix)
}
