// Package linewrap decides, line by line, how the raw text of a captured
// agent pane may be safely wrapped in a proportional-width web viewport:
// a context-sensitive classifier assigns a wrap rule to every visible line,
// and a decorator adjusts the line's pre-highlighted HTML without changing
// its visible characters.
package linewrap

// AgentID identifies the program that produced a captured pane.
type AgentID string

const (
	AgentCodex  AgentID = "codex"
	AgentClaude AgentID = "claude"
	AgentOther  AgentID = "other"
)

// ParseAgentID maps an upstream agent identifier to the closed AgentID set.
// Anything unrecognized (including the empty string) is AgentOther, which
// disables the agent-specific detectors and keeps only the generic rules.
func ParseAgentID(s string) AgentID {
	switch AgentID(s) {
	case AgentCodex, AgentClaude:
		return AgentID(s)
	}
	return AgentOther
}

// RuleTag names the wrap rule assigned to one captured line.
type RuleTag string

const (
	RuleDefault            RuleTag = "default"
	RuleCodexDiffBlock     RuleTag = "codex-diff-block"
	RuleClaudeToolBlock    RuleTag = "claude-tool-block"
	RuleDividerClip        RuleTag = "divider-clip"
	RuleTablePreserve      RuleTag = "table-preserve"
	RuleStartupBannerBlock RuleTag = "startup-banner-block"
	RuleStatuslinePreserve RuleTag = "statusline-preserve"
	RuleListLongWord       RuleTag = "list-long-word"
	RuleLabelIndent        RuleTag = "label-indent"
	RuleGenericIndent      RuleTag = "generic-indent"
)

// Classification is the per-line wrap decision.
// IndentCh is a hanging-indent width in display columns; ListPrefix is the
// exact leading marker text captured for RuleListLongWord (e.g. "- ").
type Classification struct {
	Rule       RuleTag `json:"rule"`
	IndentCh   int     `json:"indentCh,omitempty"`
	ListPrefix string  `json:"listPrefix,omitempty"`
}

// DecoratedLine is the output of Decorate: the adjusted inline HTML for one
// row plus the CSS class to put on the row element.
type DecoratedLine struct {
	LineHTML  string `json:"lineHtml"`
	ClassName string `json:"className"`
}
