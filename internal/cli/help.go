package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/cfreplace/internal/ui/pretty"
)

// Command groups shown in root help.
const (
	groupFormatting  = "formatting"
	groupMaintenance = "maintenance"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupFormatting, Title: "Formatting Commands:"},
		{ID: groupMaintenance, Title: "Maintenance Commands:"},
	}
}

// exitCodeHelp lists the documented exit codes in root help.
//
//nolint:gochecknoglobals // Read-only lookup table.
var exitCodeHelp = []struct {
	code int
	desc string
}{
	{ExitSuccess, "success"},
	{ExitChangesPending, "changes pending (--check)"},
	{ExitIncomplete, "incomplete format refused (--fail-on-incomplete)"},
	{ExitInvalidUsage, "invalid usage"},
	{ExitDataError, "malformed response or edits outside the source"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "file could not be read or written"},
	{ExitConfigError, "invalid configuration"},
}

// HelpStyles holds the styles used when rendering help.
type HelpStyles struct {
	Heading     lipgloss.Style
	Command     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Placeholder lipgloss.Style
	Comment     lipgloss.Style
	Code        lipgloss.Style
}

// NewHelpStyles returns colored styles, or plain ones when color is off.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{
			Heading:     plain,
			Command:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Placeholder: plain,
			Comment:     plain,
			Code:        plain,
		}
	}
	return &HelpStyles{
		Heading:     plain.Foreground(lipgloss.Color("11")).Bold(true),
		Command:     plain.Foreground(lipgloss.Color("14")).Bold(true),
		Subcommand:  plain.Foreground(lipgloss.Color("10")),
		Flag:        plain.Foreground(lipgloss.Color("12")),
		Placeholder: plain.Foreground(lipgloss.Color("8")).Italic(true),
		Comment:     plain.Foreground(lipgloss.Color("8")),
		Code:        plain.Foreground(lipgloss.Color("13")),
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimRight }}

{{end}}{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ examples .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}{{$cmds := .Commands}}
{{- range $group := .Groups}}

{{ heading $group.Title }}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if not .AllChildCommandsHaveGroup}}

{{ heading "Additional Commands:" }}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Exit Codes:" }}
{{ exitCodes }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// helpRenderer renders help for one command invocation. Color is resolved
// from the --color flag and the output writer at render time.
type helpRenderer struct {
	styles *HelpStyles
}

func newHelpRenderer(cmd *cobra.Command) *helpRenderer {
	mode := "auto"
	if f := cmd.Flag("color"); f != nil {
		mode = f.Value.String()
	}
	return &helpRenderer{styles: NewHelpStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))}
}

func (h *helpRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"examples":   h.examples,
		"flags":      h.flags,
		"exitCodes":  h.exitCodes,
		"rpad":       rpad,
		"trimRight":  func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

func (h *helpRenderer) render(cmd *cobra.Command) error {
	tmpl, err := template.New("help").Funcs(h.funcs()).Parse(helpTemplate)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

// examples styles example lines: the invocation as code, a trailing
// "# note" as a comment.
func (h *helpRenderer) examples(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		body := strings.TrimLeft(line, " ")

		note := ""
		if idx := strings.Index(body, "#"); idx >= 0 {
			body, note = body[:idx], body[idx:]
		}

		styled := indent + h.styles.Code.Render(strings.TrimRight(body, " "))
		if note != "" {
			styled += body[len(strings.TrimRight(body, " ")):] + h.styles.Comment.Render(note)
		}
		lines[i] = styled
	}
	return strings.Join(lines, "\n")
}

// flags renders a flag set as aligned rows, placeholders and defaults
// included.
func (h *helpRenderer) flags(fs *pflag.FlagSet) string {
	type row struct {
		plain, styled, usage string
	}

	var rows []row
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		name, usage := pflag.UnquoteUsage(f)
		plain, styled := "    ", "    "
		if f.Shorthand != "" {
			plain = "-" + f.Shorthand + ", "
			styled = h.styles.Flag.Render("-"+f.Shorthand) + ", "
		}
		plain += "--" + f.Name
		styled += h.styles.Flag.Render("--" + f.Name)
		if name != "" {
			plain += " " + name
			styled += " " + h.styles.Placeholder.Render(name)
		}

		if def := flagDefault(f); def != "" {
			usage += " (default " + def + ")"
		}

		rows = append(rows, row{plain: plain, styled: styled, usage: usage})
		width = max(width, len(plain))
	})

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(r.styled)
		b.WriteString(strings.Repeat(" ", width-len(r.plain)+3))
		b.WriteString(r.usage)
	}
	return b.String()
}

// flagDefault returns the default worth showing, or "" for zero values.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func (h *helpRenderer) exitCodes() string {
	lines := make([]string, 0, len(exitCodeHelp))
	for _, ec := range exitCodeHelp {
		lines = append(lines, fmt.Sprintf("  %s %s", h.styles.Subcommand.Render(fmt.Sprintf("%-3d", ec.code)), ec.desc))
	}
	return strings.Join(lines, "\n")
}

// installHelp makes cmd and its subcommands render help and usage with
// the cfreplace templates.
func installHelp(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := newHelpRenderer(c).render(c); err != nil {
			c.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return newHelpRenderer(c).render(c)
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
