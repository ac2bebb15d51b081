package ui

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vid2anim/internal/config"
	"vid2anim/internal/model"
	"vid2anim/internal/pipeline"
	"vid2anim/internal/progress"
	"vid2anim/internal/util"
	"vid2anim/internal/util/deps"
	"vid2anim/internal/util/media"
)

type mode int

const (
	modeForm mode = iota
	modeRunning
	modeDone
)

type rowKind int

const (
	kindField rowKind = iota
	kindFormat
	kindButton
)

type rowRef struct {
	kind     rowKind
	fieldIdx int
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts   model.CLIOptions
	styles Styles

	mode   mode
	fields []field
	format model.Format
	focus  int

	// Conversion state
	status  string
	formErr string
	result  *model.ConversionResult
	spinner spinner.Model

	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, inputPath string, opts model.CLIOptions) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()

	sp := spinner.New()
	sp.Style = sty.Spinner

	format := opts.Format
	if format != model.FormatAVIF && format != model.FormatWebP {
		format = model.FormatAVIF
	}

	m := Model{
		ctx:     c,
		cancel:  cancel,
		opts:    opts,
		styles:  sty,
		fields:  buildFields(opts, opts.FFmpegPath, inputPath),
		format:  format,
		spinner: sp,
		eventCh: make(chan tea.Msg, 64),
	}
	m.setFocus(0)
	return m
}

// rows lays out the focusable rows for the current format: plumbing fields,
// the format selector, the active parameter fields, and the convert button.
func (m Model) rows() []rowRef {
	vis := visibleFields(m.fields, m.format)
	rows := make([]rowRef, 0, len(vis)+2)
	for _, i := range vis[:2] {
		rows = append(rows, rowRef{kind: kindField, fieldIdx: i})
	}
	rows = append(rows, rowRef{kind: kindFormat, fieldIdx: -1})
	for _, i := range vis[2:] {
		rows = append(rows, rowRef{kind: kindField, fieldIdx: i})
	}
	rows = append(rows, rowRef{kind: kindButton, fieldIdx: -1})
	return rows
}

func (m *Model) setFocus(idx int) {
	rows := m.rows()
	if idx < 0 {
		idx = len(rows) - 1
	}
	if idx >= len(rows) {
		idx = 0
	}
	m.focus = idx
	for i, r := range rows {
		if r.kind != kindField {
			continue
		}
		if i == idx {
			m.fields[r.fieldIdx].input.Focus()
		} else {
			m.fields[r.fieldIdx].input.Blur()
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case stageMsg:
		m.status = msg.U.Message
		return m, m.listenEventsCmd()

	case convertDoneMsg:
		res := msg.Res
		m.mode = modeDone
		m.result = &res
		return m, m.listenEventsCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateFocusedInput(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := msg.String(); key == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	switch m.mode {
	case modeRunning:
		// Conversion is not cancellable mid-pass beyond ctrl+c.
		return m, nil

	case modeDone:
		switch msg.String() {
		case "enter":
			m.mode = modeForm
			m.result = nil
			m.status = ""
			return m, nil
		case "esc", "q":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	rows := m.rows()
	switch msg.String() {
	case "esc":
		m.cancel()
		return m, tea.Quit
	case "up", "shift+tab":
		m.setFocus(m.focus - 1)
		return m, nil
	case "down", "tab":
		m.setFocus(m.focus + 1)
		return m, nil
	case "left", "right", " ":
		if rows[m.focus].kind == kindFormat {
			if m.format == model.FormatAVIF {
				m.format = model.FormatWebP
			} else {
				m.format = model.FormatAVIF
			}
			// Row count may shrink; re-clamp focus.
			m.setFocus(m.focus)
			return m, nil
		}
	case "enter":
		if rows[m.focus].kind == kindButton {
			return m.startConvert()
		}
		m.setFocus(m.focus + 1)
		return m, nil
	}

	return m, m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	rows := m.rows()
	if m.focus >= len(rows) || rows[m.focus].kind != kindField {
		return nil
	}
	i := rows[m.focus].fieldIdx
	var cmd tea.Cmd
	m.fields[i].input, cmd = m.fields[i].input.Update(msg)
	return cmd
}

func (m Model) fieldValue(key string) string {
	for _, f := range m.fields {
		if f.key == key {
			return f.input.Value()
		}
	}
	return ""
}

// startConvert validates the form, persists settings, and launches the
// conversion in the background.
func (m Model) startConvert() (tea.Model, tea.Cmd) {
	videoPath := m.fieldValue(fieldVideo)
	if !util.IsFile(videoPath) {
		m.formErr = "Please select a valid input video file."
		return m, nil
	}

	ffmpegPath, err := deps.FindFFmpeg(m.fieldValue(fieldFFmpeg))
	if err != nil {
		m.formErr = "Please provide a valid path to the FFmpeg executable."
		return m, nil
	}

	bundle := bundleFromFields(m.fields, m.opts.Bundle)
	format := m.format
	outputPath := media.UniqueOutputPath(videoPath, format)

	// Remember the chosen parameters before converting.
	_ = config.Save(config.Settings{
		FFmpegPath:   ffmpegPath,
		LastVideoDir: lastDirOf(videoPath),
		Format:       format,
		Bundle:       bundle,
	})

	m.formErr = ""
	m.mode = modeRunning
	m.status = "Starting"

	keepTemp := m.opts.KeepTemp
	ch := m.eventCh
	ctx := m.ctx

	go func() {
		workDir, werr := util.MakeTempWorkdir("tui")
		if werr != nil {
			ch <- convertDoneMsg{Res: model.ConversionResult{
				Kind:        model.UnexpectedError,
				Diagnostic:  werr.Error(),
				EncoderPath: ffmpegPath,
			}}
			return
		}
		defer func() {
			if !keepTemp {
				_ = os.RemoveAll(workDir)
			}
		}()

		// Never verbose here: streamed encoder stderr would tear up the
		// rendered frame.
		svc := pipeline.NewService(
			pipeline.WithFFmpegPath(ffmpegPath),
			pipeline.WithWorkDir(workDir),
			pipeline.WithReporter(teaReporter{ch: ch}),
		)
		res := svc.Convert(ctx, videoPath, outputPath, format, bundle)
		ch <- convertDoneMsg{Res: res}
	}()

	return m, tea.Batch(m.spinner.Tick, m.listenEventsCmd())
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func lastDirOf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Dir(abs)
	}
	return filepath.Dir(path)
}

// teaReporter forwards pipeline stage events into the bubbletea loop.
type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	select {
	case r.ch <- stageMsg{U: u}:
	default:
	}
}

// Result is carried by convertDoneMsg instead; the richer ConversionResult
// is already in hand where the conversion goroutine finishes.
func (r teaReporter) Result(progress.Result) {}
