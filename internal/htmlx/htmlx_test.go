package htmlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *Fragment {
	t.Helper()
	frag, err := Default().ParseFragment(fragment)
	require.NoError(t, err)
	return frag
}

func TestTextDocumentOrder(t *testing.T) {
	frag := parse(t, `a<span>b<i>c</i>d</span>e`)
	assert.Equal(t, "abcde", frag.Text())
}

func TestReplaceRuneAtWithinSingleNode(t *testing.T) {
	frag := parse(t, "hello world")
	require.True(t, frag.ReplaceRuneAt(5, "\u00A0"))

	out, err := frag.Render()
	require.NoError(t, err)
	assert.Equal(t, "hello\u00A0world", out)
}

func TestReplaceRuneAtAcrossNodes(t *testing.T) {
	// Offset 6 is the space in the second text node; offsets are absolute
	// over the concatenated visible text.
	frag := parse(t, `<b>- item</b> tail`)
	require.True(t, frag.ReplaceRuneAt(6, "_"))
	assert.Equal(t, "- item_tail", frag.Text())

	out, err := frag.Render()
	require.NoError(t, err)
	assert.Equal(t, `<b>- item</b>_tail`, out)
}

func TestReplaceRuneAtMultibyte(t *testing.T) {
	// Rune offsets, not byte offsets: the marker glyph is multibyte.
	frag := parse(t, "❯ command")
	require.True(t, frag.ReplaceRuneAt(1, "\u00A0"))
	assert.Equal(t, "❯\u00A0command", frag.Text())
}

func TestReplaceRuneAtOutOfRange(t *testing.T) {
	frag := parse(t, "short")
	assert.False(t, frag.ReplaceRuneAt(5, "x"))
	assert.False(t, frag.ReplaceRuneAt(-1, "x"))
	assert.Equal(t, "short", frag.Text())
}

func TestWrapAll(t *testing.T) {
	frag := parse(t, `one <span class="c">two</span> three`)
	frag.WrapAll("span", []Attr{
		{Key: "class", Val: "hang-indent"},
		{Key: "style", Val: "--hang-indent:4ch"},
	})

	out, err := frag.Render()
	require.NoError(t, err)
	assert.Equal(t,
		`<span class="hang-indent" style="--hang-indent:4ch">one <span class="c">two</span> three</span>`,
		out)
	assert.Equal(t, "one two three", frag.Text())
}

func TestRenderEscapesTextContent(t *testing.T) {
	frag := parse(t, "a &lt; b")
	assert.Equal(t, "a < b", frag.Text())

	out, err := frag.Render()
	require.NoError(t, err)
	assert.Equal(t, "a &lt; b", out)
}
