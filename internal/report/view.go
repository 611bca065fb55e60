package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/fastcomplete/internal/tree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// maxValuesShown limits the choices listed per flag
const maxValuesShown = 6

// Render renders the report to a string
func Render(data *Data) string {
	sections := []string{
		renderHeader(data),
		renderStats(data.Stats),
	}
	if len(data.Commands) > 0 {
		sections = append(sections, renderCommands(data.Commands))
	}
	if len(data.Flags) > 0 {
		sections = append(sections, renderFlags(data.Flags))
	}
	return strings.Join(sections, "\n\n")
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🌳 Tree: ") + valueStyle.Render(data.TreePath) + "\n")
	command := "(root)"
	if len(data.Path) > 0 {
		command = strings.Join(data.Path, " ")
	}
	b.WriteString(titleStyle.Render("📍 Command: ") + valueStyle.Render(command) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderStats(s tree.Stats) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📊 Statistics:") + "\n")

	row := func(key string, value int) {
		b.WriteString(fmt.Sprintf("   %s %s\n", keyStyle.Render(key+":"), valueStyle.Render(fmt.Sprint(value))))
	}
	row("Commands", s.Commands)
	row("Leaf commands", s.Leaves)
	row("Max depth", s.MaxDepth)
	row("Flags", s.Flags)
	for _, k := range []tree.Kind{tree.Boolean, tree.Value, tree.Dynamic, tree.Choices} {
		b.WriteString(fmt.Sprintf("      %s %s\n", subtleStyle.Render(k.String()+":"), valueStyle.Render(fmt.Sprint(s.FlagsByKind[k]))))
	}
	row("Choice values", s.Choices)

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCommands(commands []CommandInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📂 Subcommands:") + "\n")
	for _, c := range commands {
		b.WriteString(fmt.Sprintf("   %s %s\n",
			valueStyle.Render(c.Name),
			subtleStyle.Render(fmt.Sprintf("(%d subcommands, %d flags)", c.Subcommands, c.Flags))))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderFlags(flags []FlagInfo) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🏴 Flags:") + "\n")
	for _, f := range flags {
		line := fmt.Sprintf("   %s %s", valueStyle.Render(tree.FlagPrefix+f.Name), keyStyle.Render(f.Kind))
		if len(f.Values) > 0 {
			line += " " + subtleStyle.Render(summarizeValues(f.Values))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// summarizeValues lists the first choices and counts the rest
func summarizeValues(values []string) string {
	if len(values) <= maxValuesShown {
		return "[" + strings.Join(values, ", ") + "]"
	}
	return fmt.Sprintf("[%s, … +%d]", strings.Join(values[:maxValuesShown], ", "), len(values)-maxValuesShown)
}
