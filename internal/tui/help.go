package tui

import (
	"fmt"
	"strings"
	"time"
)

// helpMarkdown builds the help overlay text.
func helpMarkdown(k keyMap, delay time.Duration) string {
	var b strings.Builder
	b.WriteString("# slides\n\n")
	fmt.Fprintf(&b, "Shows every indexed image in order, one every %s.\n\n", delay)
	b.WriteString("## Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	rows := []struct {
		keys []string
		desc string
	}{
		{k.Start.Keys(), "start the slideshow"},
		{k.Cancel.Keys(), "cancel every running slideshow"},
		{k.Rescan.Keys(), "rescan the media roots and reload the list"},
		{k.Help.Keys(), "toggle this help"},
		{k.Quit.Keys(), "quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| `%s` | %s |\n", strings.Join(r.keys, "` `"), r.desc)
	}
	b.WriteString("\nImages that fail to decode are skipped or end the run, ")
	b.WriteString("depending on `decode_failure` in `.slides/config.toml`.\n")
	return b.String()
}
