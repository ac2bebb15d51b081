package ui

import (
	"strings"

	"vid2anim/internal/model"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("vid2anim"))
	b.WriteString("  ")
	b.WriteString(m.styles.Subtitle.Render("convert a video to an animated image"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeRunning:
		b.WriteString(m.viewRunning())
	case modeDone:
		b.WriteString(m.viewDone())
	default:
		b.WriteString(m.viewForm())
	}
	return m.styles.Box.Render(b.String())
}

func (m Model) viewForm() string {
	var b strings.Builder
	rows := m.rows()
	for i, r := range rows {
		focused := i == m.focus
		switch r.kind {
		case kindField:
			f := m.fields[r.fieldIdx]
			b.WriteString(m.renderLabel(f.label, focused))
			b.WriteString(f.input.View())
			b.WriteString("\n")
		case kindFormat:
			b.WriteString(m.renderLabel("Format", focused))
			b.WriteString(m.renderFormatToggle())
			b.WriteString("\n")
		case kindButton:
			b.WriteString("\n")
			if focused {
				b.WriteString(m.styles.ButtonOn.Render("Convert"))
			} else {
				b.WriteString(m.styles.Button.Render("[ Convert ]"))
			}
			b.WriteString("\n")
		}
	}
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.formErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Faint.Render("↑/↓ move · ←/→ format · enter convert · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderLabel(label string, focused bool) string {
	pad := label
	if n := 22 - len(label); n > 0 {
		pad += strings.Repeat(" ", n)
	}
	if focused {
		return m.styles.Focused.Render("> "+pad) + " "
	}
	return m.styles.Label.Render("  "+pad) + " "
}

func (m Model) renderFormatToggle() string {
	avif, webp := m.styles.Value, m.styles.Value
	if m.format == model.FormatAVIF {
		avif = m.styles.Focused
	} else {
		webp = m.styles.Focused
	}
	return avif.Render("AVIF") + m.styles.Faint.Render(" / ") + webp.Render("WebP")
}

func (m Model) viewRunning() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Converting to ")
	b.WriteString(string(m.format))
	if m.status != "" {
		b.WriteString(m.styles.Faint.Render(" (" + m.status + ")"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder
	if m.result != nil {
		if m.result.Ok() {
			b.WriteString(m.styles.Success.Render(m.result.Message()))
		} else {
			b.WriteString(m.styles.Error.Render(m.result.Message()))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Faint.Render("enter new conversion · esc quit"))
	b.WriteString("\n")
	return b.String()
}
