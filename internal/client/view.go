package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroom/zhajinhua/internal/server"
)

var (
	// Style definitions
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#B03030")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	outStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// Title renders the banner shown above the table.
func Title() string {
	return titleStyle.Render(" ♠ ♥ Zha Jin Hua ♦ ♣ ")
}

// RenderView renders one snapshot as a full-table text view.
func RenderView(view server.StateUpdateData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  pot %s  unit %s\n",
		headerStyle.Render(view.Phase),
		chipStyle.Render(fmt.Sprintf("%d", view.Pot)),
		chipStyle.Render(fmt.Sprintf("%d", view.BetUnit)))

	for _, p := range view.Players {
		b.WriteString(renderSeat(view, p))
		b.WriteByte('\n')
	}

	if len(view.Logs) > 0 {
		b.WriteByte('\n')
		for _, entry := range view.Logs {
			fmt.Fprintf(&b, "%s\n", logStyle.Render("· "+entry.Text))
		}
	}

	return b.String()
}

func renderSeat(view server.StateUpdateData, p server.PlayerSnapshot) string {
	marker := "  "
	if view.Phase == "Betting" && p.ID == view.TurnIndex {
		marker = turnStyle.Render("▶ ")
	}

	name := p.Name
	if p.ID == view.YourSeat {
		name += " (you)"
	}
	if p.ID == view.DealerIndex {
		name += " ⓓ"
	}

	hand := renderHand(p)

	line := fmt.Sprintf("%s%-22s %s  %s %s",
		marker,
		name,
		chipStyle.Render(fmt.Sprintf("%5d", p.Chips)),
		hand,
		statusTag(p))
	if p.ActionFeedback != "" {
		line += "  " + outStyle.Render(p.ActionFeedback)
	}
	return line
}

func renderHand(p server.PlayerSnapshot) string {
	if len(p.Hand) > 0 {
		return handStyle.Render(strings.Join(p.Hand, " "))
	}
	if p.HandSize > 0 {
		return outStyle.Render(strings.TrimSpace(strings.Repeat("🂠 ", p.HandSize)))
	}
	return ""
}

func statusTag(p server.PlayerSnapshot) string {
	switch p.Status {
	case "Folded":
		return outStyle.Render("folded")
	case "Lost":
		return outStyle.Render("out")
	case "Won":
		return turnStyle.Render("WINNER")
	default:
		if p.HasSeenCards {
			return chipStyle.Render("seen")
		}
		return outStyle.Render("blind")
	}
}
