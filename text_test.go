package glint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomfleet/glint"
)

func mustStyle(t *testing.T, s string) glint.Style {
	t.Helper()
	st, err := glint.ParseStyle(s)
	require.NoError(t, err)
	return st
}

func TestText_Append(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("hello")
	txt.Append(" ")
	txt.AppendStyled("world", mustStyle(t, "bold"))

	assert.Equal(t, "hello world", txt.Plain())
	require.Len(t, txt.Spans(), 1)
	assert.Equal(t, glint.Span{Start: 6, End: 11, Style: mustStyle(t, "bold")}, txt.Spans()[0])
}

func TestText_AppendStyled_SkipsEmpty(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("")
	txt.AppendStyled("", mustStyle(t, "bold"))
	txt.AppendStyled("x", glint.NewStyle())
	assert.Empty(t, txt.Spans(), "empty content and zero styles produce no spans")
}

func TestText_AppendText_ShiftsSpans(t *testing.T) {
	t.Parallel()

	a := glint.NewText("ab")
	b := glint.NewStyledText("cd", mustStyle(t, "red"))
	a.AppendText(b)

	assert.Equal(t, "abcd", a.Plain())
	require.Len(t, a.Spans(), 1)
	assert.Equal(t, 2, a.Spans()[0].Start)
	assert.Equal(t, 4, a.Spans()[0].End)
}

func TestStylize_Validates(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("héllo") // é is 2 bytes starting at offset 1

	assert.ErrorIs(t, txt.Stylize(-1, 2, glint.NewStyle()), glint.ErrInvalidSpan)
	assert.ErrorIs(t, txt.Stylize(0, 7, glint.NewStyle()), glint.ErrInvalidSpan)
	assert.ErrorIs(t, txt.Stylize(3, 3, glint.NewStyle()), glint.ErrInvalidSpan)
	assert.ErrorIs(t, txt.Stylize(4, 2, glint.NewStyle()), glint.ErrInvalidSpan)
	assert.ErrorIs(t, txt.Stylize(0, 2, glint.NewStyle()), glint.ErrInvalidSpan, "end splits é")
	assert.NoError(t, txt.Stylize(0, 3, glint.NewStyle()))
}

func TestResolve_NoSpans(t *testing.T) {
	t.Parallel()

	runs := glint.NewText("plain").Resolve()
	require.Len(t, runs, 1)
	assert.Equal(t, "plain", runs[0].Text)
	assert.True(t, runs[0].Style.IsZero())

	assert.Empty(t, glint.NewText("").Resolve())
}

func TestResolve_OverlappingSpans(t *testing.T) {
	t.Parallel()

	// "abcdef" with bold on [0,4) and red on [2,6).
	txt := glint.NewText("abcdef")
	require.NoError(t, txt.Stylize(0, 4, mustStyle(t, "bold")))
	require.NoError(t, txt.Stylize(2, 6, mustStyle(t, "red")))

	runs := txt.Resolve()
	require.Len(t, runs, 3)

	assert.Equal(t, "ab", runs[0].Text)
	assert.Equal(t, mustStyle(t, "bold"), runs[0].Style)

	assert.Equal(t, "cd", runs[1].Text)
	assert.Equal(t, mustStyle(t, "bold red"), runs[1].Style)

	assert.Equal(t, "ef", runs[2].Text)
	assert.Equal(t, mustStyle(t, "red"), runs[2].Style)
}

func TestResolve_LaterSpanWinsTies(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("word")
	require.NoError(t, txt.Stylize(0, 4, mustStyle(t, "red")))
	require.NoError(t, txt.Stylize(0, 4, mustStyle(t, "blue")))

	runs := txt.Resolve()
	require.Len(t, runs, 1)
	fg, ok := runs[0].Style.Foreground()
	require.True(t, ok)
	assert.Equal(t, "blue", fg.String())
}

func TestStyleAt(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("abcdef")
	require.NoError(t, txt.Stylize(0, 4, mustStyle(t, "bold")))
	require.NoError(t, txt.Stylize(2, 6, mustStyle(t, "red")))

	assert.Equal(t, mustStyle(t, "bold"), txt.StyleAt(0))
	assert.Equal(t, mustStyle(t, "bold red"), txt.StyleAt(3))
	assert.Equal(t, mustStyle(t, "red"), txt.StyleAt(5))
	assert.True(t, txt.StyleAt(6).IsZero(), "end offset is outside every span")
}

func TestRun_Width(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, glint.Run{Text: "hello"}.Width())
	assert.Equal(t, 4, glint.Run{Text: "日本"}.Width(), "CJK is two columns per character")
	assert.Equal(t, 1, glint.Run{Text: "é"}.Width(), "combining mark adds no width")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	txt := glint.NewStyledText("hello world", mustStyle(t, "bold"))

	same := txt.Truncate(11, "…")
	assert.Equal(t, "hello world", same.Plain(), "no cut when content fits")

	cut := txt.Truncate(8, "…")
	assert.Equal(t, "hello w…", cut.Plain())
	require.Len(t, cut.Spans(), 1)
	assert.Equal(t, glint.Span{Start: 0, End: 7, Style: mustStyle(t, "bold")}, cut.Spans()[0], "span clipped to cut, suffix unstyled")
}

func TestTruncate_NeverSplitsCluster(t *testing.T) {
	t.Parallel()

	txt := glint.NewText("a日b")
	cut := txt.Truncate(2, "")
	// The 2-column 日 does not fit in the single remaining column.
	assert.Equal(t, "a", cut.Plain())
}
