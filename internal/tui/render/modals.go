package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/layers"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// RenderDealFormLayer renders the create/edit deal form as a centered modal
func RenderDealFormLayer(m *tui.Model) *lipgloss.Layer {
	fs := m.FormState
	if fs.Form == nil {
		return nil
	}

	title := "New deal"
	if fs.IsEditing() {
		title = "Edit deal"
	} else if stage, ok := m.CurrentStage(); ok {
		title = "New deal in " + stage.Name
	}

	parts := []string{components.TitleStyle.Render(title), "", fs.Form.View()}
	if fs.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorBg)).Bold(true)
		parts = append(parts, "", errStyle.Render("✕ "+fs.Err))
	}
	parts = append(parts, "", components.SubtleStyle.Render("tab/enter: next · ctrl+s: save · esc: cancel"))

	box := components.FormBoxStyle.
		Width(layers.ModalWidth(m.UiState.Width(), 40, 70)).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderDeleteConfirmLayer renders the delete prompt
func RenderDeleteConfirmLayer(m *tui.Model) *lipgloss.Layer {
	target := m.UiState.DeleteTarget()
	if target == nil {
		return nil
	}
	content := fmt.Sprintf("Delete %q?\n\n%s", target.Name,
		components.SubtleStyle.Render("[y]es  [n]o"))
	box := components.DeleteConfirmBoxStyle.Width(layers.ModalWidth(m.UiState.Width(), 30, 50)).Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderHelpLayer renders the keyboard shortcuts help screen as a layer
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	box := components.HelpBoxStyle.Width(52).Render(generateHelpText(m))
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// generateHelpText creates help text based on current key mappings
func generateHelpText(m *tui.Model) string {
	km := m.Config.KeyMappings

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"DEALS", [][2]string{
			{km.AddDeal, "Add deal to current stage"},
			{km.EditDeal, "Edit selected deal"},
			{km.DeleteDeal, "Delete selected deal"},
			{km.MoveDealLeft, "Move deal to previous stage"},
			{km.MoveDealRight, "Move deal to next stage"},
			{km.MoveDealUp, "Move deal up"},
			{km.MoveDealDown, "Move deal down"},
			{km.CyclePriority, "Cycle priority"},
		}},
		{"NAVIGATION", [][2]string{
			{km.PrevStage, "Previous stage"},
			{km.NextStage, "Next stage"},
			{km.PrevDeal, "Previous deal"},
			{km.NextDeal, "Next deal"},
			{km.PrevPipeline, "Previous pipeline"},
			{km.NextPipeline, "Next pipeline"},
		}},
		{"MOUSE", [][2]string{
			{"drag", "Move a card to any stage and slot"},
			{"wheel", "Scroll a stage"},
			{"click", "Select a card, stage, or tab"},
		}},
		{"OTHER", [][2]string{
			{km.Search, "Search deals (esc clears)"},
			{km.ShowHelp, "Show this help"},
			{km.Quit, "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render("DEALBOARD - Keyboard Shortcuts"))
	for _, section := range sections {
		b.WriteString("\n\n" + components.TitleStyle.Render(section.title))
		for _, row := range section.rows {
			fmt.Fprintf(&b, "\n  %-7s %s", row[0], row[1])
		}
	}
	b.WriteString("\n\n" + components.SubtleStyle.Render("Press any key to close"))
	return b.String()
}
