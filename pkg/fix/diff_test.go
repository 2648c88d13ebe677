package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fix"
)

func TestNewDiffIdenticalContentIsNil(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\ntext\n")

	assert.Nil(t, fix.NewDiff("doc.md", content, content))
	assert.Nil(t, fix.NewDiff("doc.md", nil, nil))
	assert.Equal(t, "", (*fix.Diff)(nil).String())
}

func TestNewDiffSingleChange(t *testing.T) {
	t.Parallel()

	before := []byte("# Title   \n\ntext\n")
	after := []byte("# Title\n\ntext\n")

	d := fix.NewDiff("doc.md", before, after)
	require.NotNil(t, d)

	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)
	require.Len(t, d.Hunks, 1)

	h := d.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 3, h.OldCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 3, h.NewCount)

	want := strings.Join([]string{
		"--- doc.md",
		"+++ doc.md",
		"@@ -1,3 +1,3 @@",
		"-# Title   ",
		"+# Title",
		" ",
		" text",
		"",
	}, "\n")
	assert.Equal(t, want, d.String())
}

func TestNewDiffAppendedLine(t *testing.T) {
	t.Parallel()

	d := fix.NewDiff("doc.md", []byte("no newline"), []byte("no newline\n"))

	// Line content is unchanged; only the missing final newline was added,
	// which the line split normalizes away.
	assert.Nil(t, d)

	d = fix.NewDiff("doc.md", []byte("one\n"), []byte("one\ntwo\n"))
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 0, d.Removed)
	assert.Contains(t, d.String(), "+two\n")
	assert.Contains(t, d.String(), " one\n")
}

func TestNewDiffDistantChangesSplitIntoHunks(t *testing.T) {
	t.Parallel()

	filler := strings.Repeat("same\n", 20)
	before := []byte("first old\n" + filler + "last old\n")
	after := []byte("first new\n" + filler + "last new\n")

	d := fix.NewDiff("doc.md", before, after)
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, 1, d.Hunks[0].OldStart)
	assert.Equal(t, 4, d.Hunks[0].OldCount, "one removal plus three context lines")
	assert.Equal(t, 19, d.Hunks[1].OldStart)
	assert.Equal(t, 4, d.Hunks[1].OldCount)
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 2, d.Removed)
}

func TestNewDiffNearbyChangesShareOneHunk(t *testing.T) {
	t.Parallel()

	before := []byte("a old\nkeep\nb old\n")
	after := []byte("a new\nkeep\nb new\n")

	d := fix.NewDiff("doc.md", before, after)
	require.NotNil(t, d)
	assert.Len(t, d.Hunks, 1)
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 2, d.Removed)
}
