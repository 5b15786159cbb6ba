package linewrap

// Tunables holds the width thresholds and signature knobs the classifier
// matches against. The defaults are calibrated against real codex/claude
// pane captures; they are exposed so a deployment can adjust them without a
// code change (the preview tool accepts them as a YAML file).
type Tunables struct {
	// LongTokenMinWidth is the display-column width an unbroken token must
	// exceed before a line is steered into list-long-word / label-indent.
	LongTokenMinWidth int `yaml:"longTokenMinWidth"`

	// DividerMinRun is the minimum repeat count of a single rule glyph for a
	// line to count as a divider.
	DividerMinRun int `yaml:"dividerMinRun"`

	// DividerMaxLabelWidth caps the display width of the text allowed before
	// a divider run ("Worked for 1m 17s ────────").
	DividerMaxLabelWidth int `yaml:"dividerMaxLabelWidth"`

	// BannerMinWidth and BannerGlyphRatio gate the startup-banner signature:
	// at least BannerMinWidth columns with BannerGlyphRatio of the non-space
	// runes drawn from the block-element glyph set.
	BannerMinWidth   int     `yaml:"bannerMinWidth"`
	BannerGlyphRatio float64 `yaml:"bannerGlyphRatio"`

	// GenericIndentMinWidth is the leading-whitespace width that earns a
	// plain line a hanging indent.
	GenericIndentMinWidth int `yaml:"genericIndentMinWidth"`

	// CodexDiffVerbs are the bullet verbs that open a codex diff block
	// ("• Edited <path>").
	CodexDiffVerbs []string `yaml:"codexDiffVerbs"`
}

// DefaultTunables returns the thresholds used by the package-level Classify.
func DefaultTunables() Tunables {
	return Tunables{
		LongTokenMinWidth:     24,
		DividerMinRun:         4,
		DividerMaxLabelWidth:  40,
		BannerMinWidth:        8,
		BannerGlyphRatio:      0.6,
		GenericIndentMinWidth: 2,
		CodexDiffVerbs:        []string{"Edited"},
	}
}
