package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/super-rummy/internal/protocol"
)

// Lipgloss styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	WildStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B00FF")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("24"))
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	TurnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderCard 渲染一张牌，背面朝上时只显示牌背
func RenderCard(c protocol.ClientCard) string {
	if c.Face == nil {
		return BackStyle.Render("░░")
	}
	face := *c.Face
	switch {
	case face.IsWild():
		return WildStyle.Render(" " + face.String())
	case face.IsRed():
		return RedStyle.Render(" " + face.String())
	default:
		return BlackStyle.Render(" " + face.String())
	}
}

// TruncateName 截断过长的名字
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
