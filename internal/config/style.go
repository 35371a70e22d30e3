package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	alterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F080")) // yellow

	containerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CCCCCC"))
)

// macOnlyMethods need osascript, which only exists on macOS
var macOnlyMethods = []string{"finder", "automation-script", "applescript", "osascript"}

func warnUnavailableMethod(method string) {
	if runtime.GOOS == "darwin" {
		return
	}
	name := strings.ToLower(strings.TrimSpace(method))
	if !lo.Contains(macOnlyMethods, name) {
		return
	}
	printWarning(
		fmt.Sprintf("Method '%s' needs macOS", name),
		fmt.Sprintf("Set core.method to '%s' or '%s' on %s", alterStyle.Render("service"), alterStyle.Render("direct"), runtime.GOOS),
		infoStyle.Render("deletions with this method will fail"),
	)
}

func printWarning(header string, lines ...string) {
	msg := warningStyle.Render("Warning: ") + header
	lines = lo.Filter(lines, func(l string, _ int) bool {
		return strings.TrimSpace(l) != ""
	})
	if len(lines) > 0 {
		msg = fmt.Sprintf("%s\n%s", msg, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	fmt.Fprintln(os.Stderr, containerStyle.Render(msg))
}
