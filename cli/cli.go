// cli/cli.go
package cli

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/mitoolbox/dataset"
	"github.com/mwiater/mitoolbox/entropy"
	"github.com/mwiater/mitoolbox/probability"
)

// Options controls the explorer.
type Options struct {
	// Title is shown above the feature list, usually the dataset path.
	Title string
	// Base is the logarithm base used for entropy and information.
	Base float64
	// Debug writes a debug.log and shows timings.
	Debug bool
}

// viewState represents the current state of the application's view.
type viewState int

const (
	// viewFeatureSelector is the state where the user picks a feature.
	viewFeatureSelector viewState = iota
	// viewPartnerSelector is the state where the user picks a second feature for a joint view.
	viewPartnerSelector
	// viewComputing is the state while distributions are being tabulated.
	viewComputing
	// viewDetail shows the tabulated distribution.
	viewDetail
)

// report is a rendered analysis of one feature or a pair of features.
type report struct {
	// title names the feature or pair.
	title string
	// body holds the rendered tables.
	body string
	// elapsed is how long tabulation took.
	elapsed time.Duration
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	// Dataset being explored.
	data *dataset.Dataset
	// Explorer options.
	opts Options
	// Current view state of the application.
	state viewState
	// Indicates if an analysis is in progress.
	isLoading bool
	// Stores any error encountered during analysis.
	err error

	// Bubble Tea list model for feature selection.
	featureList list.Model
	// Bubble Tea list model for picking the second feature of a pair.
	partnerList list.Model
	// Bubble Tea viewport model for the report.
	viewport viewport.Model
	// Bubble Tea spinner model for indicating loading.
	spinner spinner.Model

	// Column index of the selected feature.
	selected int
	// Last finished report.
	current report

	// Current width and height of the terminal.
	width, height int
	// Timestamp when the last analysis started.
	requestStartTime time.Time
}

// item is a selectable column in a Bubble Tea list.
type item struct {
	// Column index in the dataset; the label column is len(Features).
	column int
	// Column name.
	title string
	// Short summary shown under the name.
	desc string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering in the list.
func (i item) FilterValue() string { return i.title }

// analysisReadyMsg is sent when a report has been computed.
type analysisReadyMsg struct{ report report }

// analysisErr is sent when an analysis fails.
type analysisErr error

// tickMsg is a regular tick message used to refresh the loading timer.
type tickMsg time.Time

// initialModel initializes the explorer with one list item per column,
// labels last.
func initialModel(ds *dataset.Dataset, opts Options) *model {
	if opts.Base == 0 {
		opts.Base = entropy.Bits
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := columnItems(ds)

	featureList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	featureList.Title = "Select a Feature"
	if opts.Title != "" {
		featureList.Title = fmt.Sprintf("Select a Feature from %s", opts.Title)
	}
	partnerList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	partnerList.Title = "Select a Second Feature"

	return &model{
		data:        ds,
		opts:        opts,
		state:       viewFeatureSelector,
		spinner:     s,
		featureList: featureList,
		partnerList: partnerList,
		viewport:    viewport.New(100, 5),
	}
}

// columnItems lists every feature followed by the label column.
func columnItems(ds *dataset.Dataset) []list.Item {
	items := make([]list.Item, 0, len(ds.Features)+1)
	for i := 0; i <= len(ds.Features); i++ {
		col, _ := ds.Column(i)
		_, k := probability.Normalize(col)
		desc := fmt.Sprintf("%d states", k)
		if i == len(ds.Features) {
			desc += " (labels)"
		}
		items = append(items, item{column: i, title: ds.ColumnName(i), desc: desc})
	}
	return items
}

// analyzeCmd tabulates a single column and its relation to the labels.
func analyzeCmd(ds *dataset.Dataset, column int, base float64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		x, err := ds.Column(column)
		if err != nil {
			return analysisErr(err)
		}

		state := probability.Probability(x)
		h := entropy.Entropy(x, base)
		mi, err := entropy.MutualInformation(x, ds.Labels, base)
		if err != nil {
			return analysisErr(err)
		}

		var b strings.Builder
		b.WriteString(RenderPMF(probability.Values(x), state.PMF))
		b.WriteString("\n")
		b.WriteString(RenderMeasures([][2]string{
			{"states", strconv.Itoa(int(state.NumStates))},
			{"H(X)", formatFloat(h)},
			{"I(X;labels)", formatFloat(mi)},
		}))

		return analysisReadyMsg{report: report{
			title:   ds.ColumnName(column),
			body:    b.String(),
			elapsed: time.Since(start),
		}}
	}
}

// analyzePairCmd tabulates the joint distribution of two columns.
func analyzePairCmd(ds *dataset.Dataset, first, second int, base float64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		x, err := ds.Column(first)
		if err != nil {
			return analysisErr(err)
		}
		y, err := ds.Column(second)
		if err != nil {
			return analysisErr(err)
		}

		state, err := probability.JointProbability(x, y)
		if err != nil {
			return analysisErr(err)
		}
		hxy, err := entropy.JointEntropy(x, y, base)
		if err != nil {
			return analysisErr(err)
		}
		mi, err := entropy.MutualInformation(x, y, base)
		if err != nil {
			return analysisErr(err)
		}

		var b strings.Builder
		b.WriteString(RenderJoint(probability.Values(x), probability.Values(y), state))
		b.WriteString("\n")
		b.WriteString(RenderMeasures([][2]string{
			{"joint states", strconv.Itoa(int(state.NumJointStates))},
			{"H(X,Y)", formatFloat(hxy)},
			{"I(X;Y)", formatFloat(mi)},
		}))

		return analysisReadyMsg{report: report{
			title:   fmt.Sprintf("%s × %s", ds.ColumnName(first), ds.ColumnName(second)),
			body:    b.String(),
			elapsed: time.Since(start),
		}}
	}
}

// tickCmd returns a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model. It returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// startLoading switches to the computing view and returns the commands that
// run cmd alongside the spinner.
func (m *model) startLoading(cmd tea.Cmd) tea.Cmd {
	m.state = viewComputing
	m.isLoading = true
	m.requestStartTime = time.Now()
	m.err = nil
	return tea.Batch(m.spinner.Tick, cmd, tickCmd())
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "esc":
			if m.state == viewDetail || m.state == viewPartnerSelector {
				m.state = viewFeatureSelector
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.featureList.SetSize(msg.Width-2, msg.Height-4)
		m.partnerList.SetSize(msg.Width-2, msg.Height-4)
		headerHeight := 3
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case analysisReadyMsg:
		m.isLoading = false
		m.current = msg.report
		m.state = viewDetail
		m.viewport.SetContent(msg.report.body)
		m.viewport.GotoTop()
		if m.opts.Debug {
			log.Printf("analysis %q took %s", msg.report.title, msg.report.elapsed)
		}
		return m, nil

	case analysisErr:
		m.isLoading = false
		m.err = msg
		m.state = viewFeatureSelector
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewFeatureSelector:
		m.featureList, cmd = m.featureList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if it, ok := m.featureList.SelectedItem().(item); ok {
				m.selected = it.column
				cmds = append(cmds, m.startLoading(analyzeCmd(m.data, it.column, m.opts.Base)))
			}
		}

	case viewPartnerSelector:
		m.partnerList, cmd = m.partnerList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if it, ok := m.partnerList.SelectedItem().(item); ok {
				cmds = append(cmds, m.startLoading(analyzePairCmd(m.data, m.selected, it.column, m.opts.Base)))
			}
		}

	case viewDetail:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "p" {
			m.state = viewPartnerSelector
			return m, nil
		}
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on its current state.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var errLine string
	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 2)
		errLine = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	switch m.state {
	case viewFeatureSelector:
		return errLine + lipgloss.NewStyle().Margin(1, 2).Render(m.featureList.View())

	case viewPartnerSelector:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.partnerList.View())

	case viewComputing:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Tabulating... %ss\n", m.spinner.View(), timer)

	case viewDetail:
		return m.detailView()

	default:
		return "Unknown state"
	}
}

// detailView renders the header, the report and the key help.
func (m *model) detailView() string {
	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	status := headerStyle.Render(m.current.title)
	if m.opts.Debug {
		status = lipgloss.JoinHorizontal(lipgloss.Top, status,
			headerStyle.MarginLeft(1).Render(m.current.elapsed.String()))
	}
	help := lipgloss.NewStyle().Faint(true).Render(" (p to pair, tab to go back, q to quit)")
	builder.WriteString(status + help + "\n\n")
	builder.WriteString(m.viewport.View())
	return builder.String()
}

// StartGUI runs the explorer until the user quits.
func StartGUI(ds *dataset.Dataset, opts Options) error {
	if opts.Debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	}

	p := tea.NewProgram(initialModel(ds, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
