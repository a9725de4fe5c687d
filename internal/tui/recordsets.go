package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nathanbeddoewebdev/aznet/internal/armutil"
	"nathanbeddoewebdev/aznet/internal/tui/components"
	"nathanbeddoewebdev/aznet/internal/tui/styles"
	"nathanbeddoewebdev/aznet/internal/zonefile"
)

// BrowseRecordSets runs the interactive record-set browser for a zone.
// load is called on startup and again when the user refreshes.
func BrowseRecordSets(zone string, load func() ([]*armdns.RecordSet, error)) error {
	m := newRecordSetBrowser(zone, load)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type recordSetsLoadedMsg struct {
	sets []*armdns.RecordSet
}

type recordSetsErrorMsg struct {
	err error
}

type recordSetBrowser struct {
	zone string
	load func() ([]*armdns.RecordSet, error)

	sets      []*armdns.RecordSet
	filtered  []*armdns.RecordSet
	cursor    int
	listStart int

	typeFilter string
	typeCycle  []string

	detail *armdns.RecordSet

	width  int
	height int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool
}

func newRecordSetBrowser(zone string, load func() ([]*armdns.RecordSet, error)) recordSetBrowser {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	return recordSetBrowser{
		zone:      zone,
		load:      load,
		typeCycle: []string{"", "A", "AAAA", "CNAME", "MX", "NS", "PTR", "SOA", "SRV", "TXT"},
		loading:   true,
		spinner:   s,
	}
}

func (m recordSetBrowser) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m recordSetBrowser) loadCmd() tea.Cmd {
	return func() tea.Msg {
		sets, err := m.load()
		if err != nil {
			return recordSetsErrorMsg{err}
		}
		return recordSetsLoadedMsg{sets}
	}
}

func (m *recordSetBrowser) applyFilter() {
	m.filtered = m.filtered[:0]
	for _, set := range m.sets {
		if set == nil {
			continue
		}
		if m.typeFilter == "" || strings.EqualFold(zonefile.ShortType(set.Type), m.typeFilter) {
			m.filtered = append(m.filtered, set)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	if m.listStart >= len(m.filtered) {
		m.listStart = 0
	}
}

func (m recordSetBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "backspace":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.detail == nil && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.detail == nil && m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case "f":
			if m.detail == nil {
				idx := 0
				for i, t := range m.typeCycle {
					if t == m.typeFilter {
						idx = i
						break
					}
				}
				m.typeFilter = m.typeCycle[(idx+1)%len(m.typeCycle)]
				m.applyFilter()
			}
		case "r":
			m.detail = nil
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		case "enter":
			if m.detail == nil && len(m.filtered) > 0 {
				m.detail = m.filtered[m.cursor]
			}
		}

	case recordSetsLoadedMsg:
		m.loading = false
		m.sets = msg.sets
		m.applyFilter()
		m.status = fmt.Sprintf("Loaded %d record sets.", len(m.sets))
		m.statusIsError = false

	case recordSetsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m recordSetBrowser) View() string {
	header := components.Header(m.width, "dns > "+m.zone, "Azure DNS")

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "enter", Desc: "show"},
		{Key: "f", Desc: "filter"},
		{Key: "r", Desc: "reload"},
		{Key: "q", Desc: "quit"},
	}
	if m.detail != nil {
		bindings = []components.KeyBinding{
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, bindings)
	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.loading:
		content = fmt.Sprintf("\n  %s Loading record sets...", m.spinner.View())
	case m.err != nil:
		content = fmt.Sprintf("\n  %s", styles.ErrorText.Render(m.err.Error()))
	case m.detail != nil:
		content = m.renderDetail()
	case len(m.sets) == 0:
		content = "\n  No record sets found in this zone."
	default:
		content = m.renderFilterBar() + "\n" + m.renderTable(contentH-2)
	}

	if lines := lipgloss.Height(content); lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)
}

func (m recordSetBrowser) renderFilterBar() string {
	var parts []string
	parts = append(parts, "  Filter: ")

	for _, t := range m.typeCycle {
		label := t
		if t == "" {
			label = "All"
		}

		if t == m.typeFilter {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}

	return strings.Join(parts, "")
}

func (m recordSetBrowser) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return "\n  No record sets match current filter."
	}

	cols := []int{28, 6, 7, 44}

	header := styles.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %-*s",
			cols[0], "NAME",
			cols[1], "TYPE",
			cols[2], "TTL",
			cols[3], "CONTENT",
		),
	)

	rows := []string{header}

	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+(height-1) {
		m.listStart = m.cursor - (height - 2)
	}

	end := m.listStart + height - 1
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.listStart; i < end; i++ {
		set := m.filtered[i]

		cursor := " "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render(">")
			rowStyle = styles.TableSelectedRow
		}

		shortType := zonefile.ShortType(set.Type)
		preview := recordPreview(set)
		if len(preview) > cols[3]-2 {
			preview = preview[:cols[3]-5] + "..."
		}

		ttl := int64(0)
		if set.Properties != nil && set.Properties.TTL != nil {
			ttl = *set.Properties.TTL
		}

		row := fmt.Sprintf("%s %-*s %-*s %-*d %-*s",
			cursor,
			cols[0], armutil.Value(set.Name),
			cols[1], styles.RecordType(shortType).Render(shortType),
			cols[2], ttl,
			cols[3], preview,
		)
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m recordSetBrowser) renderDetail() string {
	set := m.detail

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(styles.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(styles.Value.Render(value))
		b.WriteString("\n")
	}

	line("Name", armutil.Value(set.Name))
	line("Type", zonefile.ShortType(set.Type))
	if set.Properties != nil {
		if set.Properties.TTL != nil {
			line("TTL", fmt.Sprintf("%d", *set.Properties.TTL))
		}
		if set.Properties.Fqdn != nil {
			line("FQDN", *set.Properties.Fqdn)
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Records (%d)", zonefile.RecordCount(set))))
	b.WriteString("\n")
	for _, v := range recordValues(set) {
		b.WriteString(styles.Value.Render("  " + v))
		b.WriteString("\n")
	}

	return "\n" + styles.Card.Render(b.String())
}

// recordPreview compresses a record set into one line for the table.
func recordPreview(set *armdns.RecordSet) string {
	values := recordValues(set)
	if len(values) == 0 {
		return "-"
	}
	if len(values) == 1 {
		return values[0]
	}
	return fmt.Sprintf("%s (+%d more)", values[0], len(values)-1)
}

// recordValues renders each record in a set as a display string.
func recordValues(set *armdns.RecordSet) []string {
	if set == nil || set.Properties == nil {
		return nil
	}
	p := set.Properties

	var out []string
	for _, r := range p.ARecords {
		out = append(out, armutil.Value(r.IPv4Address))
	}
	for _, r := range p.AaaaRecords {
		out = append(out, armutil.Value(r.IPv6Address))
	}
	if p.CnameRecord != nil {
		out = append(out, armutil.Value(p.CnameRecord.Cname))
	}
	for _, r := range p.MxRecords {
		out = append(out, fmt.Sprintf("%d %s", armutil.Value(r.Preference), armutil.Value(r.Exchange)))
	}
	for _, r := range p.NsRecords {
		out = append(out, armutil.Value(r.Nsdname))
	}
	for _, r := range p.PtrRecords {
		out = append(out, armutil.Value(r.Ptrdname))
	}
	if r := p.SoaRecord; r != nil {
		out = append(out, fmt.Sprintf("%s %s %d %d %d %d %d",
			armutil.Value(r.Host), armutil.Value(r.Email),
			armutil.Value(r.SerialNumber), armutil.Value(r.RefreshTime),
			armutil.Value(r.RetryTime), armutil.Value(r.ExpireTime),
			armutil.Value(r.MinimumTTL)))
	}
	for _, r := range p.SrvRecords {
		out = append(out, fmt.Sprintf("%d %d %d %s",
			armutil.Value(r.Priority), armutil.Value(r.Weight),
			armutil.Value(r.Port), armutil.Value(r.Target)))
	}
	for _, r := range p.TxtRecords {
		out = append(out, strconv.Quote(armutil.JoinStrings(r.Value, "")))
	}
	return out
}
