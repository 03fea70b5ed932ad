package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"menubg/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusColors = map[statusKind]*color.Color{
	statusInfo:  color.New(color.FgBlue),
	statusOK:    color.New(color.FgGreen),
	statusWarn:  color.New(color.FgYellow),
	statusError: color.New(color.FgRed),
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return paint(kind, base, colorize)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func paint(kind statusKind, text string, colorize bool) string {
	c, ok := statusColors[kind]
	if !colorize || !ok {
		return text
	}
	c.EnableColor()
	return c.Sprint(text)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{paint(statusInfo, line, colorize), paint(statusInfo, rule, colorize)}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var titleCase = cases.Title(language.English)

// stateLabel turns "awaiting-external-tool" into "Awaiting External Tool".
func stateLabel(s workflow.State) string {
	return titleCase.String(strings.ReplaceAll(s.String(), "-", " "))
}

func stateKind(s workflow.State) statusKind {
	switch s {
	case workflow.StateDone:
		return statusOK
	case workflow.StateFailed:
		return statusError
	case workflow.StateAwaitingExternalTool, workflow.StateVerifyingOutput:
		return statusWarn
	default:
		return statusInfo
	}
}
