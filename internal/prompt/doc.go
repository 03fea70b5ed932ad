// Package prompt asks the terminal user the questions the convert workflow
// needs: yes/no confirmations and the path of a manually located file.
// Each question is a small bubbletea program styled with lipgloss.
package prompt
