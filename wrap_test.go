package glint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomfleet/glint"
)

func plainLines(t *testing.T, lines []glint.Line) []string {
	t.Helper()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Plain()
	}
	return out
}

func TestWrap_InvalidWidth(t *testing.T) {
	t.Parallel()

	_, err := glint.Wrap(glint.NewText("x"), 0)
	require.ErrorIs(t, err, glint.ErrInvalidWidth)
	_, err = glint.Wrap(glint.NewText("x"), -3)
	require.ErrorIs(t, err, glint.ErrInvalidWidth)
}

func TestWrap_WordBoundaries(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("the quick brown fox"), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"the quick", "brown fox"}, plainLines(t, lines))
}

func TestWrap_BreakDropsWhitespace(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("ab cd"), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd"}, plainLines(t, lines))
}

func TestWrap_TrailingWhitespaceSwallowed(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("abc  "), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, plainLines(t, lines))
}

func TestWrap_HardNewlines(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("a\n\nb"), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, plainLines(t, lines))
}

func TestWrap_EmptyText(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText(""), 5)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Empty(t, lines[0].Plain())
}

func TestWrap_LongTokenHardBreaks(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("abcdefgh"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def", "gh"}, plainLines(t, lines))
}

func TestWrap_WideClustersNeverSplit(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("日本語"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"日", "本", "語"}, plainLines(t, lines))
	for _, l := range lines {
		assert.Equal(t, 2, l.Width)
	}
}

func TestWrap_OverWideClusterEmittedAlone(t *testing.T) {
	t.Parallel()

	// A 2-column cluster cannot fit a 1-column line; it is emitted on its
	// own line rather than split mid-cluster.
	lines, err := glint.Wrap(glint.NewText("日"), 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "日", lines[0].Plain())
	assert.Equal(t, 2, lines[0].Width)
}

func TestWrap_CombiningMarksStayWithBase(t *testing.T) {
	t.Parallel()

	// Each e+combining-acute cluster is one column; none may be split.
	lines, err := glint.Wrap(glint.NewText("ééé"), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"éé", "é"}, plainLines(t, lines))
}

func TestWrap_StyleRunsFollowBreaks(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("aaa bbb")
	require.NoError(t, txt.Stylize(0, 7, mustStyle(t, "bold")))
	require.NoError(t, txt.Stylize(4, 7, mustStyle(t, "red")))

	lines, err := glint.Wrap(txt, 3)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.Len(t, lines[0].Runs, 1)
	assert.Equal(t, "aaa", lines[0].Runs[0].Text)
	assert.Equal(t, mustStyle(t, "bold"), lines[0].Runs[0].Style)

	require.Len(t, lines[1].Runs, 1)
	assert.Equal(t, "bbb", lines[1].Runs[0].Text)
	assert.Equal(t, mustStyle(t, "bold red"), lines[1].Runs[0].Style)
}

func TestWrap_LineWidthsWithinLimit(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("one two three four five six seven"), 9)
	require.NoError(t, err)
	for _, l := range lines {
		assert.LessOrEqual(t, l.Width, 9)
		assert.Equal(t, glint.CellWidth(l.Plain()), l.Width, "recorded width matches content")
	}
}

func TestWrap_Idempotent(t *testing.T) {
	t.Parallel()

	lines, err := glint.Wrap(glint.NewText("the quick brown fox jumps"), 10)
	require.NoError(t, err)

	// Re-wrapping any produced line at the same width is the identity.
	for _, l := range lines {
		again, err := glint.Wrap(glint.NewText(l.Plain()), 10)
		require.NoError(t, err)
		require.Len(t, again, 1)
		assert.Equal(t, l.Plain(), again[0].Plain())
		assert.Equal(t, l.Width, again[0].Width)
	}
}

func TestWrapFrame_Height(t *testing.T) {
	t.Parallel()

	f, err := glint.WrapFrame(glint.NewText("a\nb\nc"), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Height())
}
