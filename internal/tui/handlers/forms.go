package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/models"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/forms"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// HandleDealForm feeds a key to the deal form and acts once it is
// submitted or aborted.
func HandleDealForm(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	fs := m.FormState
	if fs.Form == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	var cmd tea.Cmd
	fs.Form, cmd = fs.Form.Update(msg)

	switch fs.Form.State() {
	case forms.StateAborted:
		fs.Close()
		m.UiState.SetMode(state.NormalMode)
		return nil
	case forms.StateCompleted:
		return submitDealForm(m)
	}
	return cmd
}

// submitDealForm creates or updates the deal. Validation errors keep the
// form open with the message shown under it.
func submitDealForm(m *tui.Model) tea.Cmd {
	fs := m.FormState

	parsed, err := fs.Values.Parse()
	if err != nil {
		fs.Err = err.Error()
		fs.Form.Reopen()
		return nil
	}

	var (
		deal models.Deal
		verb string
	)
	if fs.IsEditing() {
		deal, err = m.App.DealService.UpdateDeal(m.Ctx, dealservice.UpdateDealRequest{
			DealID:      fs.EditingDealID,
			Name:        &parsed.Name,
			Value:       &parsed.Value,
			Company:     &parsed.Company,
			Owner:       &parsed.Owner,
			NextTask:    &parsed.NextTask,
			Probability: parsed.Probability,
			Tags:        &parsed.Tags,
			Priority:    &parsed.Priority,
		})
		verb = "Saved"
	} else {
		deal, err = m.App.DealService.CreateDeal(m.Ctx, dealservice.CreateDealRequest{
			StageID:     fs.StageID,
			Name:        parsed.Name,
			Value:       parsed.Value,
			Company:     parsed.Company,
			Owner:       parsed.Owner,
			NextTask:    parsed.NextTask,
			Probability: parsed.Probability,
			Tags:        parsed.Tags,
			Priority:    parsed.Priority,
		})
		verb = "Added"
	}
	if err != nil {
		fs.Err = err.Error()
		fs.Form.Reopen()
		return nil
	}

	fs.Close()
	m.UiState.SetMode(state.NormalMode)
	m.Reload()
	m.SelectDeal(deal.ID)
	return m.Notify(state.LevelInfo, describe(verb, deal.Name))
}
