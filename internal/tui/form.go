package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/invadm/invadm/internal/api"
)

// FormMode distinguishes creating a new item from editing an existing one.
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

// Form field indices
const (
	fieldName = iota
	fieldQuantity
	fieldPrice
	formFieldCount
)

// FormModel is the unified add/edit item form. The same form drives both
// flows; only the mode, the title, and the seeded values differ.
//
// The form never talks to the backend itself. The coordinator supplies a
// Save callback that turns validated fields into an async command, and
// reports the outcome back via SubmitFailed or by closing the form.
type FormModel struct {
	Mode   FormMode
	ItemID int // item being edited, FormEdit only

	NameInput     textinput.Model
	QuantityInput textinput.Model
	PriceInput    textinput.Model

	Focus      int  // focused field index
	Submitting bool // a save is in flight, inputs are inert
	Cancelled  bool // user dismissed the form

	ErrMsg string // validation or save error shown inside the form

	// Save turns validated fields into the async save command. Supplied by
	// the coordinator so the form stays network-free.
	Save func(api.ItemFields) tea.Cmd

	Width int
}

// NewAddForm creates a form with empty fields for creating a new item.
func NewAddForm(save func(api.ItemFields) tea.Cmd) FormModel {
	m := newFormModel(save)
	m.Mode = FormAdd
	return m
}

// NewEditForm creates a form seeded with the exact current values of item.
func NewEditForm(item api.Item, save func(api.ItemFields) tea.Cmd) FormModel {
	m := newFormModel(save)
	m.Mode = FormEdit
	m.ItemID = item.ID
	m.NameInput.SetValue(item.Name)
	m.QuantityInput.SetValue(strconv.Itoa(item.Quantity))
	m.PriceInput.SetValue(strconv.FormatFloat(item.Price, 'f', -1, 64))
	return m
}

func newFormModel(save func(api.ItemFields) tea.Cmd) FormModel {
	name := textinput.New()
	name.Placeholder = "Item name"
	name.CharLimit = 120
	name.Width = 40
	name.Focus()

	quantity := textinput.New()
	quantity.Placeholder = "0"
	quantity.CharLimit = 9
	quantity.Width = 40

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 12
	price.Width = 40

	return FormModel{
		NameInput:     name,
		QuantityInput: quantity,
		PriceInput:    price,
		Focus:         fieldName,
		Save:          save,
	}
}

// Title returns the form heading for the current mode.
func (m FormModel) Title() string {
	if m.Mode == FormEdit {
		return fmt.Sprintf("Edit Item #%d", m.ItemID)
	}
	return "Add Item"
}

// Fields parses and validates the current input values. A non-nil error
// means the form must stay open and nothing may be sent to the backend.
func (m FormModel) Fields() (api.ItemFields, error) {
	var fields api.ItemFields

	fields.Name = strings.TrimSpace(m.NameInput.Value())

	qtyRaw := strings.TrimSpace(m.QuantityInput.Value())
	if qtyRaw == "" {
		return fields, fmt.Errorf("quantity is required")
	}
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil {
		return fields, fmt.Errorf("quantity must be a whole number")
	}
	fields.Quantity = qty

	priceRaw := strings.TrimSpace(m.PriceInput.Value())
	if priceRaw == "" {
		return fields, fmt.Errorf("price is required")
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return fields, fmt.Errorf("price must be a number")
	}
	fields.Price = price

	if err := fields.Validate(); err != nil {
		return fields, err
	}
	return fields, nil
}

// SubmitFailed records a failed save. The form stays open with every input
// preserved so the user can correct and retry.
func (m *FormModel) SubmitFailed(err error) {
	m.Submitting = false
	m.ErrMsg = api.UserMessage(err)
}

// Update handles input while the form is open.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	// While a save is in flight the form is inert
	if m.Submitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.Cancelled = true
			return m, nil

		case "tab", "down":
			m.setFocus((m.Focus + 1) % formFieldCount)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.Focus + formFieldCount - 1) % formFieldCount)
			return m, nil

		case "enter":
			return m.submit()
		}
	}

	return m.updateInputs(msg)
}

// submit validates and, if everything checks out, starts the save.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	fields, err := m.Fields()
	if err != nil {
		m.ErrMsg = err.Error()
		return m, nil
	}

	m.ErrMsg = ""
	m.Submitting = true
	return m, m.Save(fields)
}

func (m *FormModel) setFocus(focus int) {
	m.Focus = focus
	inputs := []*textinput.Model{&m.NameInput, &m.QuantityInput, &m.PriceInput}
	for i, input := range inputs {
		if i == focus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m FormModel) updateInputs(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Focus {
	case fieldName:
		m.NameInput, cmd = m.NameInput.Update(msg)
	case fieldQuantity:
		m.QuantityInput, cmd = m.QuantityInput.Update(msg)
	case fieldPrice:
		m.PriceInput, cmd = m.PriceInput.Update(msg)
	}
	return m, cmd
}

// View renders the form as a modal box.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(FocusedInputStyle.Render(m.Title()))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Name", m.NameInput, fieldName))
	b.WriteString("\n")
	b.WriteString(m.renderField("Quantity", m.QuantityInput, fieldQuantity))
	b.WriteString("\n")
	b.WriteString(m.renderField("Price", m.PriceInput, fieldPrice))
	b.WriteString("\n")

	if m.ErrMsg != "" {
		b.WriteString("\n")
		b.WriteString(ModalErrorStyle.Render("✗ " + m.ErrMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Submitting {
		b.WriteString(SubtitleStyle.Render("Saving..."))
	} else {
		b.WriteString(HelpStyle.Render("enter save • tab next field • esc cancel"))
	}

	width := SafeModalWidth(60, m.Width)
	return ModalBoxStyle.Width(width).Render(b.String())
}

func (m FormModel) renderField(label string, input textinput.Model, index int) string {
	labelStyle := BlurredInputStyle
	if m.Focus == index && !m.Submitting {
		labelStyle = FocusedInputStyle
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Render(label),
		input.View(),
	)
}
