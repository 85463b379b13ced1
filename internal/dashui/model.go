// Package dashui provides the Bubble Tea analysis dashboard.
package dashui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jinnic/wordle-analysis/internal/corpus"
	"github.com/jinnic/wordle-analysis/internal/freq"
	"github.com/jinnic/wordle-analysis/internal/model"
	"github.com/jinnic/wordle-analysis/internal/report"
	"github.com/jinnic/wordle-analysis/internal/store"
)

const (
	tabOverview = iota
	tabWordle
	tabEnglish
	tabTopLetters
	tabHistory
)

const (
	corpusWordle  = "wordle"
	corpusEnglish = "english"

	defaultPlotHeight = 10
	historyWindow     = 5
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// LoadFunc produces a corpus on demand.
type LoadFunc func() (*corpus.Corpus, error)

// Model implements the Bubble Tea dashboard.
type Model struct {
	cache       *corpus.Cache
	loadWordle  LoadFunc
	loadEnglish LoadFunc
	store       *store.Store
	cfg         model.Config

	report     report.Report
	runs       []model.RunRecord
	errMsg     string
	runsErrMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	letterTable  table.Model
	letterLayout tableLayout

	width  int
	height int

	topNInputMode  bool
	topNInput      textinput.Model
	topNInputError string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs a dashboard model.
func NewModel(cache *corpus.Cache, loadWordle, loadEnglish LoadFunc, st *store.Store, cfg model.Config) *Model {
	m := &Model{
		cache:       cache,
		loadWordle:  loadWordle,
		loadEnglish: loadEnglish,
		store:       st,
		cfg:         cfg,
		tabs:        []string{"Overview", "Wordle", "English", "Top Letters", "History"},
	}
	m.initTopNInput()
	m.initLetterTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabTopLetters {
			m.letterTable.Focus()
		} else {
			m.letterTable.Blur()
		}
		if m.topNInputMode {
			return m.updateTopNInput(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.cache.Invalidate(corpusWordle)
			m.cache.Invalidate(corpusEnglish)
			m.refreshReport()
			m.updateLayout()
			return m, tea.ClearScreen
		case "n", "enter":
			if msg.String() == "enter" && m.activeTab != tabTopLetters {
				return m, nil
			}
			return m.startTopNInput()
		case "g", "home":
			if m.activeTab == tabTopLetters {
				m.letterTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabTopLetters {
				m.letterTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabTopLetters {
				var cmd tea.Cmd
				m.letterTable, cmd = m.letterTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.topNInputMode {
		return fitLines(m.renderTopNModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initTopNInput() {
	m.topNInput = textinput.New()
	m.topNInput.Prompt = "Top N: "
	m.topNInput.Placeholder = "10"
	m.topNInput.CharLimit = 2
	m.topNInput.Cursor.SetMode(cursor.CursorBlink)
}

func (m *Model) initLetterTable() {
	m.letterTable = buildLetterTable(report.Report{}, 0, 0, 1)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setLetterTableSize(m.width, vpHeight)
	promptWidth := lipgloss.Width(m.topNInput.Prompt)
	m.topNInput.Width = maxInt(4, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabTopLetters {
		m.letterTable.Focus()
	} else {
		m.letterTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettingsSummary(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettingsSummary() string {
	summary := fmt.Sprintf("Settings: top-n=%d  plot-height=%d", m.cfg.TopN, m.cfg.PlotHeight)
	if m.errMsg == "" && m.report.Wordle != nil {
		summary += fmt.Sprintf("  wordle=%d words  english=%d words", len(m.report.Wordle.Words), len(m.report.English.Words))
	}
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Top N: n  Refresh: r  Quit: q"
	if m.activeTab == tabTopLetters {
		help = "Nav: left/right  Rows: up/down  Top N: n/enter  Refresh: r  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabTopLetters {
		if m.errMsg != "" {
			return fitLines("Failed to load analysis.", m.width, height)
		}
		view := tableMutedStyle.Render(m.letterTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	wordle, err := m.cache.Get(corpusWordle, m.loadWordle)
	if err != nil {
		m.setLoadError(err)
		return
	}
	english, err := m.cache.Get(corpusEnglish, m.loadEnglish)
	if err != nil {
		m.setLoadError(err)
		return
	}
	rep, err := report.Build(wordle, english)
	if err != nil {
		m.setLoadError(err)
		return
	}
	m.errMsg = ""
	m.report = rep
	m.loadRuns()
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.applyLetterTable(width, bodyHeight, true)
	m.renderTabContents()
}

func (m *Model) setLoadError(err error) {
	m.errMsg = err.Error()
	for i := range m.viewports {
		m.viewports[i].SetContent("Failed to load analysis.")
	}
}

func (m *Model) loadRuns() {
	m.runsErrMsg = ""
	m.runs = nil
	if m.store == nil {
		return
	}
	runs, err := m.store.ListRuns(context.Background(), model.HistoryConfig{})
	if err != nil {
		m.runsErrMsg = err.Error()
		return
	}
	m.runs = runs
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load analysis.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabWordle].SetContent(renderCorpusTab("Wordle", m.report.WordleFreq, m.report.WordlePos))
	m.viewports[tabEnglish].SetContent(renderCorpusTab("English", m.report.EnglishFreq, m.report.EnglishPos))
	m.viewports[tabHistory].SetContent(renderHistoryTab(m.runs, width, m.plotHeight(), m.runsErrMsg))
}

func renderOverview(r report.Report, width int) string {
	if r.Wordle == nil {
		return "No analysis available."
	}
	cards := []string{
		metricCard("Wordle words", fmt.Sprintf("%d", len(r.Wordle.Words))),
		metricCard("English words", fmt.Sprintf("%d", len(r.English.Words))),
		metricCard("TVD", fmt.Sprintf("%.4f", r.TVD)),
		metricCard("Top letter", r.TopLetter()),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	var buf bytes.Buffer
	if err := report.RenderComparisonBarsWithColor(&buf, "Letter Probability Comparison", "wordle", "english", r.WordleProbs, r.EnglishProbs, true); err != nil {
		return summary + "\n\n" + fmt.Sprintf("Failed to render comparison: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func renderCorpusTab(name string, f freq.LetterFrequency, pf freq.PositionalFrequency) string {
	var buf bytes.Buffer
	if err := report.RenderFrequencyBarsWithColor(&buf, name+" Letter Frequency", f, true); err != nil {
		return fmt.Sprintf("Failed to render frequencies: %v", err)
	}
	if err := report.RenderPositionalHeatmap(&buf, name+" Letters by Position", pf); err != nil {
		return fmt.Sprintf("Failed to render heatmap: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderHistoryTab(runs []model.RunRecord, width, height int, errMsg string) string {
	if errMsg != "" {
		return fmt.Sprintf("Failed to load history: %s", errMsg)
	}
	if len(runs) == 0 {
		return "No runs found. Run an analysis first."
	}
	var buf bytes.Buffer
	if err := report.RenderHistoryWithSize(&buf, runs, historyWindow, width, height); err != nil {
		return fmt.Sprintf("Failed to render history: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) plotHeight() int {
	if m.cfg.PlotHeight > 0 {
		return m.cfg.PlotHeight
	}
	return defaultPlotHeight
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildLetterTable(r report.Report, topN, width, height int) table.Model {
	cols, rows := buildLetterTableData(r, topN)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(letterTableStyles())
	return t
}

func buildLetterTableData(r report.Report, topN int) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Wordle", Width: 6},
		{Title: "Count", Width: 6},
		{Title: "Pct", Width: 7},
		{Title: "English", Width: 7},
		{Title: "Count", Width: 6},
		{Title: "Pct", Width: 7},
	}
	if r.Wordle == nil {
		return columns, nil
	}
	wordleRanks := freq.TopLetters(r.WordleFreq, topN)
	englishRanks := freq.TopLetters(r.EnglishFreq, topN)
	size := maxInt(len(wordleRanks), len(englishRanks))
	rows := make([]table.Row, 0, size)
	for i := 0; i < size; i++ {
		row := table.Row{fmt.Sprintf("%d", i+1), "", "", "", "", "", ""}
		if i < len(wordleRanks) {
			row[1] = string(wordleRanks[i].Letter)
			row[2] = fmt.Sprintf("%d", wordleRanks[i].Count)
			row[3] = fmt.Sprintf("%.2f%%", wordleRanks[i].Percent)
		}
		if i < len(englishRanks) {
			row[4] = string(englishRanks[i].Letter)
			row[5] = fmt.Sprintf("%d", englishRanks[i].Count)
			row[6] = fmt.Sprintf("%.2f%%", englishRanks[i].Percent)
		}
		rows = append(rows, row)
	}
	return columns, rows
}

func (m *Model) applyLetterTable(width, height int, force bool) {
	cols, rows := buildLetterTableData(m.report, m.cfg.TopN)
	viewportHeight := maxInt(1, height-1)
	if !force &&
		m.letterLayout.width == width &&
		m.letterLayout.height == viewportHeight &&
		m.letterLayout.rowCount == len(rows) {
		return
	}
	m.letterTable.SetColumns(cols)
	m.letterTable.SetRows(rows)
	m.letterLayout.rowCount = len(rows)
	m.setLetterTableSize(width, height)
}

func (m *Model) setLetterTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.letterLayout.width == width && m.letterLayout.height == viewportHeight {
		return
	}
	m.letterLayout.width = width
	m.letterLayout.height = viewportHeight
	m.letterTable.SetWidth(width)
	m.letterTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustLetterTableHeight(height)
	if m.letterLayout.height != viewportHeight {
		m.letterLayout.height = viewportHeight
		m.letterTable.SetHeight(viewportHeight)
	}
}

func letterTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) adjustLetterTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.letterTable.Height()
	viewHeight := lipgloss.Height(m.letterTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.letterTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.letterTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) startTopNInput() (tea.Model, tea.Cmd) {
	m.topNInputMode = true
	m.topNInputError = ""
	m.topNInput.SetValue(strconv.Itoa(m.cfg.TopN))
	return m, m.topNInput.Focus()
}

func (m *Model) updateTopNInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.topNInputMode = false
		m.topNInputError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyTopNInput(); err != nil {
			m.topNInputError = err.Error()
			return m, nil
		}
		m.topNInputMode = false
		m.topNInputError = ""
		_, bodyHeight, _ := m.layoutHeights()
		m.applyLetterTable(m.width, bodyHeight, true)
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.topNInput, cmd = m.topNInput.Update(msg)
	return m, cmd
}

func (m *Model) applyTopNInput() error {
	raw := strings.TrimSpace(m.topNInput.Value())
	if raw == "" {
		return fmt.Errorf("top N is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fmt.Errorf("invalid top N (use integer >= 1)")
	}
	if n > 26 {
		n = 26
	}
	m.cfg.TopN = n
	return nil
}

func (m *Model) renderTopNModal() string {
	title := cardValueStyle.Render("Top Letters Count")
	body := []string{
		title,
		m.topNInput.View(),
		headerStyle.Render("How many letters to rank (1-26)."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.topNInputError != "" {
		body = append(body, errorStyle.Render(m.topNInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
