package state

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/tui/forms"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Deal form field keys
const (
	FieldName        = "name"
	FieldCompany     = "company"
	FieldOwner       = "owner"
	FieldValue       = "value"
	FieldProbability = "probability"
	FieldNextTask    = "next_task"
	FieldTags        = "tags"
	FieldPriority    = "priority"
)

// DealValues are the raw strings behind the deal form fields
type DealValues struct {
	Name        string
	Company     string
	Owner       string
	Value       string
	Probability string
	NextTask    string
	Tags        string
	Priority    string
}

// ValuesFromDeal fills the form strings from an existing deal
func ValuesFromDeal(d models.Deal) DealValues {
	return DealValues{
		Name:        d.Name,
		Company:     d.Company,
		Owner:       d.Owner,
		Value:       d.Value.String(),
		Probability: strconv.Itoa(d.Probability),
		NextTask:    d.NextTask,
		Tags:        strings.Join(d.Tags, ", "),
		Priority:    string(d.Priority),
	}
}

// ParsedDeal is the form contents converted to typed values
type ParsedDeal struct {
	Name        string
	Company     string
	Owner       string
	Value       decimal.Decimal
	Probability *int // nil when left blank
	NextTask    string
	Tags        []string
	Priority    models.Priority
}

// Parse converts the form strings. Range checks are left to the deal
// service so the board and the CLI report the same messages.
func (v DealValues) Parse() (ParsedDeal, error) {
	parsed := ParsedDeal{
		Name:     strings.TrimSpace(v.Name),
		Company:  strings.TrimSpace(v.Company),
		Owner:    strings.TrimSpace(v.Owner),
		NextTask: strings.TrimSpace(v.NextTask),
		Value:    decimal.Zero,
	}

	if raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v.Value), "$")); raw != "" {
		value, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return ParsedDeal{}, fmt.Errorf("value %q is not a number", v.Value)
		}
		parsed.Value = value
	}

	if raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.Probability), "%")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return ParsedDeal{}, fmt.Errorf("probability %q is not a whole number", v.Probability)
		}
		parsed.Probability = &p
	}

	for _, tag := range strings.Split(v.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			parsed.Tags = append(parsed.Tags, tag)
		}
	}

	priority, err := models.ParsePriority(v.Priority)
	if err != nil {
		priority = models.PriorityMedium
	}
	parsed.Priority = priority
	return parsed, nil
}

// FormState manages the deal form: the form itself, the values its fields
// write to, and what it will create or edit.
type FormState struct {
	Form   *forms.Form
	Values *DealValues

	// EditingDealID is empty when creating
	EditingDealID types.DealID
	// StageID is where a new deal is added
	StageID types.StageID
	// Err is the last validation message shown under the form
	Err string
}

// NewFormState creates an empty FormState.
func NewFormState() *FormState {
	return &FormState{}
}

// Open builds a fresh deal form over initial and returns the focus command.
func (s *FormState) Open(stageID types.StageID, editing types.DealID, initial DealValues) tea.Cmd {
	values := initial
	s.Values = &values
	s.EditingDealID = editing
	s.StageID = stageID
	s.Err = ""

	priorities := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = string(p)
	}
	if s.Values.Priority == "" {
		s.Values.Priority = string(models.PriorityMedium)
	}

	s.Form = forms.NewForm(
		forms.NewTextInput(FieldName, "Name", "Website redesign", &s.Values.Name),
		forms.NewTextInput(FieldCompany, "Company", "Northwind Traders", &s.Values.Company),
		forms.NewTextInput(FieldOwner, "Owner", "Sarah Chen", &s.Values.Owner),
		forms.NewTextInput(FieldValue, "Value", "12000", &s.Values.Value),
		forms.NewTextInput(FieldProbability, "Probability %", "stage default", &s.Values.Probability),
		forms.NewTextInput(FieldNextTask, "Next task", "Intro call", &s.Values.NextTask),
		forms.NewTextInput(FieldTags, "Tags", "comma, separated", &s.Values.Tags),
		forms.NewChoice(FieldPriority, "Priority", priorities, &s.Values.Priority),
	)
	return s.Form.Init()
}

// IsEditing reports whether the form edits an existing deal
func (s *FormState) IsEditing() bool {
	return s.EditingDealID != ""
}

// Close drops the form.
func (s *FormState) Close() {
	s.Form = nil
	s.Values = nil
	s.EditingDealID = ""
	s.StageID = ""
	s.Err = ""
}
