package linewrap

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// blockState tracks the multi-line unit the forward pass is currently inside.
type blockState int

const (
	blockNone blockState = iota
	blockCodexDiff
	blockClaudeTool
)

// Classifier assigns a wrap rule to every line of a captured pane buffer.
// The zero value is not usable; construct with NewClassifier.
type Classifier struct {
	t Tunables
}

// NewClassifier returns a Classifier with the given thresholds.
func NewClassifier(t Tunables) *Classifier {
	return &Classifier{t: t}
}

var defaultClassifier = NewClassifier(DefaultTunables())

// Classify runs the default classifier over the buffer. See
// (*Classifier).Classify.
func Classify(lines []string, agent AgentID) []Classification {
	return defaultClassifier.Classify(lines, agent)
}

// Classify assigns one Classification per input line, in order. It is a pure
// function of its arguments: a single forward pass with one piece of block
// state, recomputed from scratch on every call. Unknown agent identifiers
// degrade to AgentOther, which disables the agent-gated detectors.
func (c *Classifier) Classify(lines []string, agent AgentID) []Classification {
	agent = ParseAgentID(string(agent))
	out := make([]Classification, len(lines))
	block := blockNone
	for i, raw := range lines {
		// Upstream interprets color, but captured panes can leak bare
		// escape sequences; they must not confuse shape matching.
		line := ansi.Strip(raw)
		out[i], block = c.classifyLine(line, agent, block)
	}
	// The trailing pane line of a known agent is its live status footer and
	// must never wrap, whatever else it looks like.
	if (agent == AgentCodex || agent == AgentClaude) && len(out) > 0 {
		out[len(out)-1] = Classification{Rule: RuleStatuslinePreserve}
	}
	return out
}

func (c *Classifier) classifyLine(line string, agent AgentID, block blockState) (Classification, blockState) {
	// Structural resets fire before everything else, agent-independent.
	if isTableLine(line) {
		return Classification{Rule: RuleTablePreserve}, blockNone
	}
	if c.isBannerLine(line) {
		return Classification{Rule: RuleStartupBannerBlock}, blockNone
	}

	// Divider recognition is deliberately disabled for unknown producers;
	// the same visual shape falls through to the generic rules.
	if agent != AgentOther && c.isDividerLine(line) {
		return Classification{Rule: RuleDividerClip}, blockNone
	}

	if isBlankLike(line) {
		switch block {
		case blockCodexDiff:
			// Codex diff hunks use blank lines as hard separators.
			return Classification{Rule: RuleDefault}, blockNone
		case blockClaudeTool:
			// Claude tool transcripts legitimately contain blank padding.
			return Classification{Rule: RuleClaudeToolBlock}, blockClaudeTool
		}
		return Classification{Rule: RuleDefault}, blockNone
	}

	switch block {
	case blockNone:
		if agent == AgentCodex && c.isCodexDiffStart(line) {
			return Classification{Rule: RuleCodexDiffBlock}, blockCodexDiff
		}
		if agent == AgentClaude && isClaudeToolStart(line) {
			return Classification{Rule: RuleClaudeToolBlock}, blockClaudeTool
		}
	case blockCodexDiff:
		if isCodexDiffRow(line) || isDiffGapMarker(line) || isWrappedDiffRemainder(line) {
			return Classification{Rule: RuleCodexDiffBlock}, blockCodexDiff
		}
	case blockClaudeTool:
		if isClaudeToolContinuation(line) {
			return Classification{Rule: RuleClaudeToolBlock}, blockClaudeTool
		}
	}

	// Anything that ended (or never entered) a block lands here.
	return c.classifyPlain(line), blockNone
}

// classifyPlain applies the non-block hanging-indent rules.
func (c *Classifier) classifyPlain(line string) Classification {
	listed := false
	if m := listMarkerRe.FindString(line); m != "" {
		listed = true
		first := firstToken(line[len(m):])
		if runewidth.StringWidth(first) > c.t.LongTokenMinWidth {
			return Classification{
				Rule:       RuleListLongWord,
				IndentCh:   runewidth.StringWidth(m),
				ListPrefix: m,
			}
		}
	}
	lead := leadingWhitespaceWidth(line)
	if !listed && hasLongToken(line, c.t.LongTokenMinWidth) {
		return Classification{Rule: RuleLabelIndent, IndentCh: lead}
	}
	if lead >= c.t.GenericIndentMinWidth {
		return Classification{Rule: RuleGenericIndent, IndentCh: lead}
	}
	return Classification{Rule: RuleDefault}
}

// Line-shape detectors.

var (
	listMarkerRe    = regexp.MustCompile(`^[ \t]*(?:- |\* |\d+\. |› |❯ )`)
	codexDiffRowRe  = regexp.MustCompile(`^\s*\d+(?:\s+[+-])?(?:\s.*)?$`)
	diffGapMarkerRe = regexp.MustCompile(`^\s*(?:⋮|…|\.{3})\s*$`)
)

const (
	tableJunctionGlyphs = "┌┬┐├┼┤└┴┘╔╦╗╠╬╣╚╩╝╭╮╰╯"
	tableColumnGlyphs   = "│║"
	dividerGlyphs       = "─━═╌┄┈-=_"
	bannerGlyphs        = "█▉▊▋▌▍▎▏▀▄▁▂▃▅▆▇░▒▓"
	toolIndicators      = "⏺●"
	continuationGlyphs  = "⎿└├│"
)

// isBlankLike reports whether the line is empty once invisible characters
// (zero-width space, byte-order marker) and ordinary whitespace are removed.
func isBlankLike(line string) bool {
	for _, r := range line {
		switch r {
		case '\u200B', '\uFEFF':
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isTableLine(line string) bool {
	if strings.ContainsAny(line, tableJunctionGlyphs) {
		return true
	}
	cols := 0
	for _, r := range line {
		if strings.ContainsRune(tableColumnGlyphs, r) {
			cols++
			if cols >= 2 {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) isBannerLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if runewidth.StringWidth(trimmed) < c.t.BannerMinWidth {
		return false
	}
	total, banner := 0, 0
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if strings.ContainsRune(bannerGlyphs, r) {
			banner++
		}
	}
	return total > 0 && float64(banner)/float64(total) >= c.t.BannerGlyphRatio
}

// isDividerLine matches a run of a single rule glyph, optionally prefixed by
// a short label ("Worked for 1m 17s ─────────"). Scanned by hand: matching
// "the same glyph repeated" needs a backreference, which RE2 does not have.
func (c *Classifier) isDividerLine(line string) bool {
	runes := []rune(strings.TrimSpace(line))
	if len(runes) == 0 {
		return false
	}
	glyph := runes[len(runes)-1]
	if !strings.ContainsRune(dividerGlyphs, glyph) {
		return false
	}
	i := len(runes) - 1
	for i >= 0 && runes[i] == glyph {
		i--
	}
	if run := len(runes) - 1 - i; run < c.t.DividerMinRun {
		return false
	}
	label := strings.TrimSpace(string(runes[:i+1]))
	if label == "" {
		return true
	}
	if strings.ContainsAny(label, dividerGlyphs) {
		return false
	}
	return runewidth.StringWidth(label) <= c.t.DividerMaxLabelWidth
}

// isCodexDiffStart matches the bullet that opens a codex edit hunk:
// "• Edited <path>" with an optional "(+adds -dels)" suffix.
func (c *Classifier) isCodexDiffStart(line string) bool {
	rest, ok := strings.CutPrefix(line, "• ")
	if !ok {
		return false
	}
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return false
	}
	for _, verb := range c.t.CodexDiffVerbs {
		if fields[0] == verb {
			return true
		}
	}
	return false
}

// isCodexDiffRow matches a numbered diff row: line-number gutter, then an
// optional "+"/"-" change marker, then content.
func isCodexDiffRow(line string) bool {
	return codexDiffRowRe.MatchString(line)
}

func isDiffGapMarker(line string) bool {
	return diffGapMarkerRe.MatchString(line)
}

// isWrappedDiffRemainder matches the soft-wrapped tail of a previous diff
// row: unindented, non-blank, and carrying no new structural prefix. Only
// meaningful while a codex diff block is open.
func isWrappedDiffRemainder(line string) bool {
	r := firstRune(line)
	return r != 0 && r != '•' && !unicode.IsSpace(r)
}

// isClaudeToolStart matches the tool-call glyph followed by a call
// signature, e.g. "⏺ Bash(ls -la)". Tool names are always capitalized and
// always carry parenthesized arguments; anything else is UI chrome.
func isClaudeToolStart(line string) bool {
	r := firstRune(line)
	if r == 0 || !strings.ContainsRune(toolIndicators, r) {
		return false
	}
	rest := strings.TrimLeft(line[len(string(r)):], " ")
	if rest == "" || rest[0] < 'A' || rest[0] > 'Z' {
		return false
	}
	paren := strings.IndexByte(rest, '(')
	return paren > 0 && paren <= 20
}

// isClaudeToolContinuation matches indented transcript rows, including the
// "⎿" result-connector style of continuation glyphs.
func isClaudeToolContinuation(line string) bool {
	r := firstRune(line)
	if r == 0 {
		return false
	}
	return unicode.IsSpace(r) || strings.ContainsRune(continuationGlyphs, r)
}

// Small string helpers.

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func firstToken(s string) string {
	start := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if start < 0 {
		return ""
	}
	end := strings.IndexFunc(s[start:], unicode.IsSpace)
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

func hasLongToken(line string, minWidth int) bool {
	for _, tok := range strings.Fields(line) {
		if runewidth.StringWidth(tok) > minWidth {
			return true
		}
	}
	return false
}

func leadingWhitespaceWidth(line string) int {
	w := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\t' {
			w += 8 - w%8
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
