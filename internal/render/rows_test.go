package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuki-yano/vde-monitor-sub003/internal/linewrap"
)

func TestPaintRowsClassifiesAndDecorates(t *testing.T) {
	lines := []string{
		"⏺ Bash(ls -la)",
		"  ⎿ Done",
		"ready",
	}
	p := NewPainter(Config{})

	rows, err := p.PaintRows(lines, EscapeLines(lines), linewrap.AgentClaude)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, linewrap.ClassToolBlock, rows[0].ClassName)
	assert.Equal(t, linewrap.ClassToolBlock, rows[1].ClassName)
	assert.Equal(t, linewrap.ClassPreserveRow, rows[2].ClassName)
}

func TestPaintRowsLengthMismatch(t *testing.T) {
	p := NewPainter(Config{})
	_, err := p.PaintRows([]string{"a", "b"}, []string{"a"}, linewrap.AgentOther)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 raw lines but 1 html lines")
}

func TestPaintRowsEmptyBuffer(t *testing.T) {
	p := NewPainter(Config{})
	rows, err := p.PaintRows(nil, nil, linewrap.AgentCodex)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSnapshotStampsAndNormalizesAgent(t *testing.T) {
	p := NewPainter(Config{})
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	snap, err := p.Snapshot([]string{"hello"}, []string{"hello"}, linewrap.AgentID("gemini"))
	require.NoError(t, err)
	assert.Equal(t, linewrap.AgentOther, snap.Agent)
	assert.Equal(t, fixed, snap.GeneratedAt)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "hello", snap.Rows[0].HTML)
}

func TestPainterHonorsTunablesAndDegradedMode(t *testing.T) {
	tun := linewrap.DefaultTunables()
	tun.LongTokenMinWidth = 5
	p := NewPainter(Config{Tunables: &tun, Degraded: true})

	lines := []string{"- mediumtoken rest", "footer"}
	rows, err := p.PaintRows(lines, EscapeLines(lines), linewrap.AgentOther)
	require.NoError(t, err)

	// Degraded decoration: gap pinned textually, no hang-indent wrapper.
	assert.Contains(t, rows[0].HTML, "\u00A0mediumtoken")
	assert.NotContains(t, rows[0].HTML, "hang-indent")
}

func TestEscapeLines(t *testing.T) {
	got := EscapeLines([]string{`a <b> & "c"`, ""})
	assert.Equal(t, []string{"a &lt;b&gt; &amp; &#34;c&#34;", ""}, got)
}
