package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/facts"
	"github.com/yaklabco/mdfix/pkg/flavor"
	"github.com/yaklabco/mdfix/pkg/lint"
)

func newTestContext(opts map[string]any, ruleID string, fl flavor.Flavor) *lint.Context {
	cache := facts.Build([]byte("# Heading\n"), nil, fl)
	var cfg *config.RuleConfig
	if opts != nil {
		cfg = &config.RuleConfig{Options: opts}
	}
	return lint.NewContext(context.Background(), cache, cfg, ruleID)
}

func TestContext_Fields(t *testing.T) {
	t.Parallel()

	rc := newTestContext(nil, "T001", defaultFlavor())

	assert.NotNil(t, rc.Facts)
	assert.NotNil(t, rc.Doc)
	assert.Equal(t, defaultFlavor().Name(), rc.Flavor.Name())
	assert.False(t, rc.Cancelled())
}

func TestContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cache := facts.Build([]byte("text\n"), nil, defaultFlavor())
	rc := lint.NewContext(ctx, cache, nil, "T001")

	assert.False(t, rc.Cancelled())
	cancel()
	assert.True(t, rc.Cancelled())
}

func TestContext_Allowed(t *testing.T) {
	t.Parallel()

	mkdocs := flavor.Get(flavor.MkDocs)

	rc := newTestContext(nil, "MD046", mkdocs)
	assert.True(t, rc.Allowed(flavor.ConstructAdmonition))

	other := newTestContext(nil, "MD009", mkdocs)
	assert.False(t, other.Allowed(flavor.ConstructAdmonition))

	rc = newTestContext(nil, "MD046", defaultFlavor())
	assert.False(t, rc.Allowed(flavor.ConstructAdmonition))
}

func TestContext_Options(t *testing.T) {
	t.Parallel()

	rc := newTestContext(map[string]any{
		"int":        3,
		"yaml_int":   float64(4),
		"text":       "value",
		"flag":       true,
		"list":       []string{"a", "b"},
		"yaml_list":  []interface{}{"c", "d"},
		"wrong_type": 12,
	}, "T001", defaultFlavor())

	assert.Equal(t, 3, rc.OptionInt("int", 1))
	assert.Equal(t, 4, rc.OptionInt("yaml_int", 1))
	assert.Equal(t, 1, rc.OptionInt("missing", 1))

	assert.Equal(t, "value", rc.OptionString("text", "def"))
	assert.Equal(t, "def", rc.OptionString("wrong_type", "def"))

	assert.True(t, rc.OptionBool("flag", false))
	assert.False(t, rc.OptionBool("missing", false))

	assert.Equal(t, []string{"a", "b"}, rc.OptionStringSlice("list", nil))
	assert.Equal(t, []string{"c", "d"}, rc.OptionStringSlice("yaml_list", nil))
	assert.Nil(t, rc.OptionStringSlice("missing", nil))
}

func TestContext_NilConfig(t *testing.T) {
	t.Parallel()

	rc := newTestContext(nil, "T001", defaultFlavor())

	assert.Equal(t, 7, rc.OptionInt("anything", 7))
	assert.Equal(t, "d", rc.OptionString("anything", "d"))
	assert.True(t, rc.OptionBool("anything", true))
}
