// Package render presents orchestrator snapshots in a terminal: a lipgloss
// card grid for humans, JSON and YAML for scripts.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codeberg.org/snonux/wordtoons/internal/orchestrator"
	"codeberg.org/snonux/wordtoons/internal/words"
)

const (
	minCardWidth = 18
	cardGap      = 1
)

var (
	accent = lipgloss.Color("205")
	muted  = lipgloss.Color("240")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	wordStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	translationStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(accent).
				Padding(0, 1)
)

// Cards renders snap as an error banner, a translation box and the four word
// cards. files maps slots to saved image paths and may be nil.
func Cards(snap orchestrator.Snapshot, width int, files map[words.Slot]string) string {
	var sections []string

	if snap.LastError != "" {
		sections = append(sections, errorStyle.Render("Error: "+snap.LastError))
	}

	switch {
	case snap.State == orchestrator.Idle:
		sections = append(sections, faintStyle.Render("Enter a word to see its opposite, a synonym, Gen-Z slang and a translation."))
	case snap.IsFetchingWords():
		sections = append(sections, grid(skeletonCards(cardWidth(width)), width))
	case snap.Words != nil:
		sections = append(sections, translationBox(*snap.Words, snap.Language))
		sections = append(sections, grid(wordCards(snap, cardWidth(width), files), width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func cardWidth(width int) int {
	perRow := 4
	if width < 4*(minCardWidth+2+cardGap) {
		perRow = 2
	}
	w := width/perRow - 2 - cardGap
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// grid lays cards out in one row, or two rows on narrow terminals
func grid(cards []string, width int) string {
	perRow := len(cards)
	if width < 4*(minCardWidth+2+cardGap) {
		perRow = 2
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		var row []string
		for i, c := range cards[start:end] {
			if i > 0 {
				row = append(row, strings.Repeat(" ", cardGap))
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func skeletonCards(width int) []string {
	cards := make([]string, 0, words.SlotCount)
	for _, slot := range words.Slots {
		cards = append(cards, cardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(slot.Title()),
			faintStyle.Render("loading..."),
			faintStyle.Render("░░░░░░░░░░"),
		)))
	}
	return cards
}

func wordCards(snap orchestrator.Snapshot, width int, files map[words.Slot]string) []string {
	cards := make([]string, 0, words.SlotCount)
	for _, slot := range words.Slots {
		cards = append(cards, cardStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(slot.Title()),
			wordStyle.Render(snap.Words.Word(slot)),
			imageLine(snap, slot, files),
		)))
	}
	return cards
}

func imageLine(snap orchestrator.Snapshot, slot words.Slot, files map[words.Slot]string) string {
	switch {
	case snap.IsFetchingImages():
		return faintStyle.Render("drawing...")
	case snap.Images == nil:
		return faintStyle.Render("No image")
	case files[slot] != "":
		return files[slot]
	default:
		return faintStyle.Render("image ready")
	}
}

func translationBox(set words.WordSet, lang words.Language) string {
	return translationStyle.Render(fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(lang.String()),
		wordStyle.Render(set.Translation),
		faintStyle.Render("("+set.Pronunciation+")"),
	))
}
