package linewrap

import (
	"fmt"
	"strings"

	"github.com/yuki-yano/vde-monitor-sub003/internal/htmlx"
)

// CSS hooks handed to the row element. The preserve class covers every rule
// that must never reflow; the block classes let the stylesheet suppress
// wrapping per block kind.
const (
	ClassPreserveRow = "wrap-preserve"
	ClassDivider     = "wrap-divider"
	ClassDiffBlock   = "wrap-diff-block"
	ClassToolBlock   = "wrap-tool-block"
)

const (
	hangIndentClass = "hang-indent"
	hangIndentVar   = "--hang-indent"

	nonBreakingSpace = "\u00A0"
	wordJoiner       = "\u2060"
)

// Decorator turns a line's pre-highlighted inline HTML plus its
// Classification into the adjusted HTML and row class. A nil engine selects
// degraded string mode: the non-breaking gap is still patched textually,
// hanging-indent wrapping is skipped.
type Decorator struct {
	engine htmlx.Engine
}

// NewDecorator returns a Decorator using the given tree engine, which may be
// nil for degraded string-only operation.
func NewDecorator(engine htmlx.Engine) *Decorator {
	return &Decorator{engine: engine}
}

var defaultDecorator = NewDecorator(htmlx.Default())

// Decorate runs the default tree-backed decorator. See
// (*Decorator).Decorate.
func Decorate(lineHTML string, c Classification) DecoratedLine {
	return defaultDecorator.Decorate(lineHTML, c)
}

// Decorate never fails: any parse or mapping problem degrades to the raw
// HTML with an empty class, so a broken decoration can never keep a line
// from rendering. The visible character sequence is never changed; only
// invisible joiners, a non-breaking space and wrapper markup are added.
func (d *Decorator) Decorate(lineHTML string, c Classification) DecoratedLine {
	switch c.Rule {
	case RuleStatuslinePreserve, RuleTablePreserve, RuleStartupBannerBlock:
		return DecoratedLine{LineHTML: lineHTML, ClassName: ClassPreserveRow}
	case RuleDividerClip:
		return DecoratedLine{LineHTML: lineHTML, ClassName: ClassDivider}
	case RuleCodexDiffBlock:
		return DecoratedLine{LineHTML: lineHTML, ClassName: ClassDiffBlock}
	case RuleClaudeToolBlock:
		return DecoratedLine{LineHTML: lineHTML, ClassName: ClassToolBlock}
	case RuleListLongWord:
		// Never indent continuation text under a prompt glyph.
		if isPromptPrefix(c.ListPrefix) {
			return DecoratedLine{LineHTML: lineHTML}
		}
		return DecoratedLine{LineHTML: d.adjustListLongWord(lineHTML, c)}
	case RuleLabelIndent, RuleGenericIndent:
		return DecoratedLine{LineHTML: d.applyHangingIndent(lineHTML, c.IndentCh)}
	}
	return DecoratedLine{LineHTML: lineHTML}
}

// gapPatch derives the patch for the space separating a list prefix from its
// first word: the rune offset of that space in the visible text, and its
// replacement. A hyphen immediately before the gap gets a word joiner so the
// renderer can't treat "hyphen + space" as a hyphenation break.
func gapPatch(listPrefix string) (offset int, replacement string, ok bool) {
	runes := []rune(listPrefix)
	if len(runes) == 0 || runes[len(runes)-1] != ' ' {
		return 0, "", false
	}
	replacement = nonBreakingSpace
	if len(runes) >= 2 && runes[len(runes)-2] == '-' {
		replacement = wordJoiner + nonBreakingSpace
	}
	return len(runes) - 1, replacement, true
}

// adjustListLongWord pins the prefix gap with a non-breaking space and, in
// precise mode, additionally wraps the content for hanging indentation.
func (d *Decorator) adjustListLongWord(lineHTML string, c Classification) string {
	offset, replacement, ok := gapPatch(c.ListPrefix)
	if !ok {
		return lineHTML
	}

	if d.engine == nil {
		return patchGapTextually(lineHTML, c.ListPrefix, replacement)
	}

	frag, err := d.engine.ParseFragment(lineHTML)
	if err != nil {
		return lineHTML
	}
	if !frag.ReplaceRuneAt(offset, replacement) {
		return lineHTML
	}
	if c.IndentCh > 0 {
		wrapHangingIndent(frag, c.IndentCh)
	}
	out, err := frag.Render()
	if err != nil {
		return lineHTML
	}
	return out
}

// patchGapTextually is the degraded-mode gap patch: replace the final
// whitespace run of the first raw occurrence of the prefix. The target space
// can hide inside highlight markup, in which case the prefix text won't
// occur verbatim and the line is left alone.
func patchGapTextually(lineHTML, listPrefix, replacement string) string {
	idx := strings.Index(lineHTML, listPrefix)
	if idx < 0 {
		return lineHTML
	}
	head := strings.TrimRight(listPrefix, " \t")
	return lineHTML[:idx+len(head)] + replacement + lineHTML[idx+len(listPrefix):]
}

// applyHangingIndent wraps the whole line content in one container carrying
// the indent width in character units; the stylesheet reads the custom
// property to align wrapped continuations under the first visible column.
// Degraded mode omits the wrapper: the line still wraps, just at column 0.
func (d *Decorator) applyHangingIndent(lineHTML string, indentCh int) string {
	if indentCh <= 0 || d.engine == nil {
		return lineHTML
	}
	frag, err := d.engine.ParseFragment(lineHTML)
	if err != nil {
		return lineHTML
	}
	wrapHangingIndent(frag, indentCh)
	out, err := frag.Render()
	if err != nil {
		return lineHTML
	}
	return out
}

func wrapHangingIndent(frag *htmlx.Fragment, indentCh int) {
	frag.WrapAll("span", []htmlx.Attr{
		{Key: "class", Val: hangIndentClass},
		{Key: "style", Val: fmt.Sprintf("%s:%dch", hangIndentVar, indentCh)},
	})
}

// isPromptPrefix reports whether the captured list prefix is a chat/prompt
// marker rather than a list bullet.
func isPromptPrefix(listPrefix string) bool {
	switch strings.TrimSpace(listPrefix) {
	case "›", "❯":
		return true
	}
	return false
}
