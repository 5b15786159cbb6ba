package render

import (
	"fmt"
	"html"
	"time"

	"github.com/yuki-yano/vde-monitor-sub003/internal/htmlx"
	"github.com/yuki-yano/vde-monitor-sub003/internal/linewrap"
)

// Row is one paintable line of a captured pane: the adjusted inline HTML
// plus the class for the row element.
type Row struct {
	Index     int    `json:"index"`
	ClassName string `json:"className,omitempty"`
	HTML      string `json:"html"`
}

// Snapshot bundles the rows of one render pass for a web consumer.
type Snapshot struct {
	Agent       linewrap.AgentID `json:"agent"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Rows        []Row            `json:"rows"`
}

// Config configures a Painter.
type Config struct {
	// Tunables overrides the classifier thresholds; nil keeps the defaults.
	Tunables *linewrap.Tunables
	// Degraded disables the HTML tree engine, forcing string-only
	// decoration.
	Degraded bool
}

// Painter is the rendering-collaborator glue: classify the visible buffer
// once, decorate each row. It holds no state between passes; a superseded
// pass's output is simply discarded by the caller.
type Painter struct {
	classifier *linewrap.Classifier
	decorator  *linewrap.Decorator
	now        func() time.Time
}

// NewPainter creates a Painter.
func NewPainter(cfg Config) *Painter {
	t := linewrap.DefaultTunables()
	if cfg.Tunables != nil {
		t = *cfg.Tunables
	}
	var engine htmlx.Engine
	if !cfg.Degraded {
		engine = htmlx.Default()
	}
	return &Painter{
		classifier: linewrap.NewClassifier(t),
		decorator:  linewrap.NewDecorator(engine),
		now:        time.Now,
	}
}

// PaintRows classifies the raw lines and decorates the matching
// pre-highlighted HTML lines. The two slices must correspond index for
// index; a length mismatch is the only reportable error.
func (p *Painter) PaintRows(lines, htmlLines []string, agent linewrap.AgentID) ([]Row, error) {
	if len(lines) != len(htmlLines) {
		return nil, fmt.Errorf("paint rows: %d raw lines but %d html lines", len(lines), len(htmlLines))
	}
	classifications := p.classifier.Classify(lines, agent)
	rows := make([]Row, len(lines))
	for i, fragment := range htmlLines {
		decorated := p.decorator.Decorate(fragment, classifications[i])
		rows[i] = Row{Index: i, ClassName: decorated.ClassName, HTML: decorated.LineHTML}
	}
	return rows, nil
}

// Snapshot paints the buffer and stamps the result for a web consumer.
func (p *Painter) Snapshot(lines, htmlLines []string, agent linewrap.AgentID) (*Snapshot, error) {
	rows, err := p.PaintRows(lines, htmlLines, agent)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Agent:       linewrap.ParseAgentID(string(agent)),
		GeneratedAt: p.now().UTC(),
		Rows:        rows,
	}, nil
}

// EscapeLines is a stand-in highlighter for callers without the upstream
// ANSI-to-HTML collaborator: plain HTML escaping, one fragment per line.
func EscapeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = html.EscapeString(line)
	}
	return out
}
