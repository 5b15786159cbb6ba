// wrap-preview reads captured pane text from stdin and writes the decorated
// HTML rows to stdout, one per line. It exists for eyeballing classifier and
// decorator output against real agent captures without the dashboard.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yuki-yano/vde-monitor-sub003/internal/linewrap"
	"github.com/yuki-yano/vde-monitor-sub003/internal/render"
)

func main() {
	fs := flag.NewFlagSet("wrap-preview", flag.ExitOnError)
	agent := fs.String("agent", "other", "Producing agent: codex, claude or other")
	tunablesPath := fs.String("tunables", "", "Optional YAML file overriding classifier thresholds")
	asJSON := fs.Bool("json", false, "Emit the snapshot as JSON instead of HTML rows")
	degraded := fs.Bool("degraded", false, "Force string-only decoration (no tree engine)")

	fs.Usage = func() {
		fmt.Println("Usage: wrap-preview [options] < pane.txt")
		fmt.Println()
		fmt.Println("Classify and decorate captured pane lines for the web viewport.")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  tmux capture-pane -p | wrap-preview -agent claude")
		fmt.Println("  wrap-preview -agent codex -tunables wide.yaml -json < pane.txt")
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	cfg := render.Config{Degraded: *degraded}
	if *tunablesPath != "" {
		t, err := loadTunables(*tunablesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Tunables = t
	}

	lines, err := readLines(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read stdin: %v\n", err)
		os.Exit(1)
	}

	painter := render.NewPainter(cfg)
	agentID := linewrap.ParseAgentID(*agent)

	if *asJSON {
		snapshot, err := painter.Snapshot(lines, render.EscapeLines(lines), agentID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "Error: encode snapshot: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rows, err := painter.PaintRows(lines, render.EscapeLines(lines), agentID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, row := range rows {
		if row.ClassName != "" {
			fmt.Fprintf(out, "<div class=%q>%s</div>\n", row.ClassName, row.HTML)
			continue
		}
		fmt.Fprintf(out, "<div>%s</div>\n", row.HTML)
	}
}

// loadTunables decodes a YAML thresholds file on top of the defaults, so a
// partial file only overrides what it names.
func loadTunables(path string) (*linewrap.Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tunables: %w", err)
	}
	t := linewrap.DefaultTunables()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	return &t, nil
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
