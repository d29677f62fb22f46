package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/villagesim/npc-engine/internal/storage"
	"github.com/villagesim/npc-engine/pkg/npc"
	"github.com/villagesim/npc-engine/pkg/trauma"
)

// ConsoleUI is the BubbleTea model that runs the inspector.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	store      storage.Store
	characters []*npc.Character
	selected   int

	detailViewport viewport.Model
	rosterViewport viewport.Model
	ready          bool
	width          int
	height         int
	status         string
	err            error
}

type daySavedMsg struct {
	days int
	err  error
}

var (
	detailPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(1).
				PaddingLeft(3).
				PaddingRight(0)

	rosterPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(0).
				PaddingLeft(0).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

func NewConsoleUI(store storage.Store, characters []*npc.Character) ConsoleUI {
	detailVp := viewport.New(50, 20)
	detailVp.MouseWheelEnabled = true
	rosterVp := viewport.New(20, 20)

	return ConsoleUI{
		store:          store,
		characters:     characters,
		detailViewport: detailVp,
		rosterViewport: rosterVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		dvCmd tea.Cmd
		rvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.detailViewport, dvCmd = m.detailViewport.Update(msg)
		return m, dvCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		detailWidth := int(float64(m.width)*0.7) - 4
		rosterWidth := m.width - detailWidth - 6

		m.detailViewport.Width = detailWidth - 2
		m.detailViewport.Height = m.height - 4
		m.rosterViewport.Width = rosterWidth - 2
		m.rosterViewport.Height = m.height - 4

		m.ready = true
		m.refreshContent()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selected = (m.selected + 1) % len(m.characters)
			m.status = ""
			m.refreshContent()
		case "shift+tab", "left", "h":
			m.selected = (m.selected - 1 + len(m.characters)) % len(m.characters)
			m.status = ""
			m.refreshContent()
		case "d":
			return m, m.advanceDays(1)
		case "w":
			return m, m.advanceDays(7)
		case "c":
			data, err := json.MarshalIndent(m.current(), "", "  ")
			if err != nil {
				m.err = err
				return m, nil
			}
			if err := clipboard.WriteAll(string(data)); err != nil {
				m.err = err
				return m, nil
			}
			m.status = "Character JSON copied to clipboard"
			m.refreshContent()
		}

	case daySavedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = fmt.Sprintf("Advanced %d day(s) and saved", msg.days)
		}
		m.refreshContent()
	}

	m.detailViewport, dvCmd = m.detailViewport.Update(msg)
	m.rosterViewport, rvCmd = m.rosterViewport.Update(msg)
	return m, tea.Batch(dvCmd, rvCmd)
}

func (m ConsoleUI) current() *npc.Character {
	return m.characters[m.selected]
}

// advanceDays steps every character, with a rest-flavored activity day for
// anyone carrying trauma, then persists the settlement.
func (m ConsoleUI) advanceDays(days int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for day := 0; day < days; day++ {
			for _, c := range m.characters {
				var activities []trauma.Activity
				if len(c.Trauma.Memories) > 0 {
					activities = []trauma.Activity{trauma.Storytelling}
				}
				c.AdvanceDay(activities)
			}
		}
		for _, c := range m.characters {
			if err := m.store.SaveCharacter(ctx, c); err != nil {
				return daySavedMsg{days: days, err: err}
			}
		}
		return daySavedMsg{days: days}
	}
}

func (m *ConsoleUI) refreshContent() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.renderDetail())
	m.rosterViewport.SetContent(m.renderRoster())
}

func (m *ConsoleUI) renderDetail() string {
	c := m.current()
	s := c.Summarize()
	width := m.detailViewport.Width
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Name) + "\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("age %d · %d days in settlement", s.Age, s.DaysAlive)) + "\n\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width-4)) + "\n\n")

	b.WriteString(sectionStyle.Render("Condition") + "\n")
	condition := valueStyle.Render(s.PhysicalCondition)
	if len(s.UrgentNeeds) > 0 {
		needs := make([]string, len(s.UrgentNeeds))
		for i, n := range s.UrgentNeeds {
			needs[i] = npc.DisplayLabel(n)
		}
		condition += warnStyle.Render("  needs: " + strings.Join(needs, ", "))
	}
	b.WriteString(condition + "\n")
	b.WriteString(fmt.Sprintf("health %.2f · hunger %.2f · energy %.2f\n\n", c.Health, c.Hunger, c.Energy))

	b.WriteString(sectionStyle.Render("Personality") + "\n")
	b.WriteString(wordwrap.String(s.PersonalitySummary, width-4) + "\n\n")

	b.WriteString(sectionStyle.Render("Skills") + "\n")
	if len(s.TopSkills) == 0 || s.TotalExperience == 0 {
		b.WriteString("No notable skills yet\n")
	}
	for _, skill := range s.TopSkills {
		if skill.Level == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("%s  %s (%.2f)\n",
			npc.DisplayLabel(string(skill.Category)), skill.Tier, skill.Level))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Trauma") + "\n")
	if s.TraumaCount == 0 {
		b.WriteString("No traumatic memories\n\n")
	} else {
		b.WriteString(fmt.Sprintf("%d memories · healing %.0f%%\n", s.TraumaCount, s.HealingProgress*100))
		if s.MostSevereTrauma != nil {
			b.WriteString(wordwrap.String(fmt.Sprintf("Worst: %s (%s) — %s",
				npc.DisplayLabel(string(s.MostSevereTrauma.Type)),
				s.MostSevereTrauma.Intensity,
				s.MostSevereTrauma.Description), width-4) + "\n")
		}
		for influence, v := range s.BehaviorInfluences {
			if v >= 0.2 {
				b.WriteString(warnStyle.Render(fmt.Sprintf("%s %.2f\n", npc.DisplayLabel(string(influence)), v)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Relationships") + "\n")
	if s.TotalRelationships == 0 {
		b.WriteString("Knows no one yet\n")
	} else {
		b.WriteString(fmt.Sprintf("%d partners · isolation %.2f · influence %.2f\n",
			s.TotalRelationships, s.SocialIsolation, s.SocialInfluence))
		for _, r := range s.ClosestPartners {
			b.WriteString(fmt.Sprintf("%s — %s (%.2f)\n", partnerName(m.characters, r.Partner), r.Type, r.Score))
		}
		for _, conflict := range s.Conflicts {
			b.WriteString(warnStyle.Render(wordwrap.String(conflict.Description, width-4)) + "\n")
		}
	}
	b.WriteString("\n")

	if s.LastAction != "" {
		result := "failed"
		if s.LastActionSuccess != nil && *s.LastActionSuccess {
			result = "succeeded"
		}
		b.WriteString(helpStyle.Render(fmt.Sprintf("Last action: %s (%s)", npc.DisplayLabel(s.LastAction), result)) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	return b.String()
}

func (m *ConsoleUI) renderRoster() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SETTLEMENT") + "\n\n")

	for i, c := range m.characters {
		line := fmt.Sprintf("%s (%s)", c.Name, c.PhysicalCondition())
		if i == m.selected {
			b.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render(strings.Join([]string{
		"tab/←/→  switch character",
		"d  advance one day",
		"w  advance one week",
		"c  copy JSON",
		"q  quit",
	}, "\n")))
	return b.String()
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading settlement..."
	}

	detail := detailPanelStyle.Render(m.detailViewport.View())
	roster := rosterPanelStyle.Render(m.rosterViewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, detail, roster)
}

// partnerName resolves a partner id to its display name when the partner
// is part of the loaded settlement.
func partnerName(characters []*npc.Character, id string) string {
	for _, c := range characters {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
