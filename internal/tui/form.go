package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/projectcompass/spyglass/internal/fault"
	"github.com/projectcompass/spyglass/internal/model"
)

// Form field order. Category and priority selectors sit after the text
// inputs in the focus cycle.
const (
	fieldFromEmail = iota
	fieldFromName
	fieldSubject
	fieldContent
	fieldCategory
	fieldPriority
	fieldCount
)

// submitResultMsg carries the outcome of an inquiry submission back to
// the form modal.
type submitResultMsg struct {
	receipt model.SubmitReceipt
	err     error
}

// SubmitModal is the inquiry submission form. It runs the POST in a
// command so the dashboard stays responsive, and keeps the receipt
// around so the dashboard can refresh after a successful submit.
type SubmitModal struct {
	api     model.InquiryWriter
	timeout time.Duration

	inputs      []textinput.Model
	focus       int
	categoryIdx int // 0 selects automatic classification
	priorityIdx int // 0 selects automatic classification

	submitting bool
	submitted  bool
	receipt    model.SubmitReceipt
	errText    string
}

// NewSubmitModal creates the submission form with the email field
// focused.
func NewSubmitModal(api model.InquiryWriter, timeout time.Duration) *SubmitModal {
	if timeout <= 0 {
		timeout = model.DefaultRequestTimeout
	}

	inputs := make([]textinput.Model, 4)

	inputs[fieldFromEmail] = textinput.New()
	inputs[fieldFromEmail].Placeholder = "vendor@example.com"
	inputs[fieldFromEmail].CharLimit = 120
	inputs[fieldFromEmail].Focus()

	inputs[fieldFromName] = textinput.New()
	inputs[fieldFromName].Placeholder = "Vendor name (optional)"
	inputs[fieldFromName].CharLimit = 120

	inputs[fieldSubject] = textinput.New()
	inputs[fieldSubject].Placeholder = "Subject"
	inputs[fieldSubject].CharLimit = 200

	inputs[fieldContent] = textinput.New()
	inputs[fieldContent].Placeholder = "Describe the inquiry"
	inputs[fieldContent].CharLimit = 500

	return &SubmitModal{
		api:     api,
		timeout: timeout,
		inputs:  inputs,
	}
}

func (f *SubmitModal) ID() string { return "submit" }

// Submitted reports whether the form completed a successful submission.
// The dashboard uses this when popping the modal to schedule a refresh.
func (f *SubmitModal) Submitted() bool { return f.submitted }

func (f *SubmitModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		f.submitting = false
		if msg.err != nil {
			f.errText = fault.Classify(msg.err).Error()
			return false, nil
		}
		f.submitted = true
		f.receipt = msg.receipt
		return false, nil

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	return false, nil
}

func (f *SubmitModal) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// After a successful submit any key closes the form.
	if f.submitted {
		return true, nil
	}

	if f.submitting {
		if msg.String() == "esc" {
			return true, nil
		}
		return false, nil
	}

	switch msg.String() {
	case "esc":
		return true, nil

	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return false, nil

	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return false, nil

	case "left":
		if f.focus == fieldCategory {
			f.categoryIdx = cycle(f.categoryIdx, -1, len(model.Categories())+1)
			return false, nil
		}
		if f.focus == fieldPriority {
			f.priorityIdx = cycle(f.priorityIdx, -1, len(model.Priorities())+1)
			return false, nil
		}

	case "right":
		if f.focus == fieldCategory {
			f.categoryIdx = cycle(f.categoryIdx, 1, len(model.Categories())+1)
			return false, nil
		}
		if f.focus == fieldPriority {
			f.priorityIdx = cycle(f.priorityIdx, 1, len(model.Priorities())+1)
			return false, nil
		}

	case "enter":
		if err := f.validate(); err != "" {
			f.errText = err
			return false, nil
		}
		f.errText = ""
		f.submitting = true
		return false, f.submitCmd(f.buildSubmission())
	}

	// Everything else edits the focused text input.
	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return false, cmd
	}

	return false, nil
}

func (f *SubmitModal) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// cycle steps idx by delta within [0, n).
func cycle(idx, delta, n int) int {
	return (idx + delta + n) % n
}

// validate mirrors the service's required-field check so the obvious
// mistakes never leave the client.
func (f *SubmitModal) validate() string {
	if strings.TrimSpace(f.inputs[fieldFromEmail].Value()) == "" {
		return "from email is required"
	}
	if !strings.Contains(f.inputs[fieldFromEmail].Value(), "@") {
		return "from email must be an email address"
	}
	if strings.TrimSpace(f.inputs[fieldSubject].Value()) == "" {
		return "subject is required"
	}
	if strings.TrimSpace(f.inputs[fieldContent].Value()) == "" {
		return "content is required"
	}
	return ""
}

func (f *SubmitModal) buildSubmission() model.InquirySubmission {
	sub := model.InquirySubmission{
		FromEmail: strings.TrimSpace(f.inputs[fieldFromEmail].Value()),
		FromName:  strings.TrimSpace(f.inputs[fieldFromName].Value()),
		Subject:   strings.TrimSpace(f.inputs[fieldSubject].Value()),
		Content:   strings.TrimSpace(f.inputs[fieldContent].Value()),
	}
	if f.categoryIdx > 0 {
		sub.Category = model.Categories()[f.categoryIdx-1]
	}
	if f.priorityIdx > 0 {
		sub.Priority = model.Priorities()[f.priorityIdx-1]
	}
	return sub
}

func (f *SubmitModal) submitCmd(sub model.InquirySubmission) tea.Cmd {
	api, timeout := f.api, f.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		receipt, err := api.SubmitInquiry(ctx, sub)
		return submitResultMsg{receipt: receipt, err: err}
	}
}

func (f *SubmitModal) categoryLabel() string {
	if f.categoryIdx == 0 {
		return "auto"
	}
	return model.Categories()[f.categoryIdx-1]
}

func (f *SubmitModal) priorityLabel() string {
	if f.priorityIdx == 0 {
		return "auto"
	}
	return model.Priorities()[f.priorityIdx-1]
}

func (f *SubmitModal) View(width, height int) string {
	modalWidth := width - 8
	if modalWidth > 72 {
		modalWidth = 72
	}
	if modalWidth < 40 {
		modalWidth = 40
	}
	contentWidth := modalWidth - 4

	for i := range f.inputs {
		f.inputs[i].Width = contentWidth - 14
	}

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render("Submit Inquiry")

	var body string
	switch {
	case f.submitted:
		body = f.renderReceipt(contentWidth)
	default:
		body = f.renderForm(contentWidth)
	}

	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(f.statusHint())

	modal := lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(0, 1).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

func (f *SubmitModal) statusHint() string {
	switch {
	case f.submitted:
		return "Any key: Close"
	case f.submitting:
		return "Submitting" + strings.Repeat(".", int(time.Now().UnixMilli()/300)%4)
	default:
		return "Tab: Next field | left/right: Cycle choice | Enter: Submit | ESC: Cancel"
	}
}

func (f *SubmitModal) renderForm(width int) string {
	label := lipgloss.NewStyle().Foreground(ColorGray).Width(10)
	focusedLabel := lipgloss.NewStyle().Foreground(ColorWhite).Bold(true).Width(10)
	choice := lipgloss.NewStyle().Foreground(ColorWhite)

	row := func(idx int, name, value string) string {
		style := label
		marker := "  "
		if f.focus == idx {
			style = focusedLabel
			marker = "▸ "
		}
		return marker + style.Render(name) + value
	}

	lines := []string{
		row(fieldFromEmail, "From", f.inputs[fieldFromEmail].View()),
		row(fieldFromName, "Name", f.inputs[fieldFromName].View()),
		row(fieldSubject, "Subject", f.inputs[fieldSubject].View()),
		row(fieldContent, "Content", f.inputs[fieldContent].View()),
		row(fieldCategory, "Category", choice.Render("◂ "+f.categoryLabel()+" ▸")),
		row(fieldPriority, "Priority", choice.Render("◂ "+f.priorityLabel()+" ▸")),
	}

	if f.errText != "" {
		lines = append(lines, "", errorBadgeStyle.Render("✗ "+truncate(f.errText, width)))
	}

	return strings.Join(lines, "\n")
}

func (f *SubmitModal) renderReceipt(width int) string {
	ok := lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	dim := lipgloss.NewStyle().Foreground(ColorGray)
	return strings.Join([]string{
		ok.Render("✓ Inquiry submitted"),
		dim.Render(truncate(fmt.Sprintf("ID:      %s", f.receipt.InquiryID), width)),
		dim.Render(truncate(fmt.Sprintf("Message: %s", f.receipt.Message), width)),
	}, "\n")
}
