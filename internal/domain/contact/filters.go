package contact

import (
	"strings"
	"time"
)

// Presence filters on optional fields.
type Presence string

const (
	PresenceAll Presence = "all"
	PresenceYes Presence = "yes"
	PresenceNo  Presence = "no"
)

// ParsePresence falls back to PresenceAll for unknown values.
func ParsePresence(value string) Presence {
	switch Presence(strings.ToLower(strings.TrimSpace(value))) {
	case PresenceYes:
		return PresenceYes
	case PresenceNo:
		return PresenceNo
	default:
		return PresenceAll
	}
}

func (p Presence) matches(value *string) bool {
	switch p {
	case PresenceYes:
		return value != nil && *value != ""
	case PresenceNo:
		return value == nil || *value == ""
	default:
		return true
	}
}

// Filters narrows a contact listing. Zero values disable a filter.
// CreatedFrom and CreatedTo are calendar days; both bounds are inclusive.
type Filters struct {
	Stages      []Stage
	HasEmail    Presence
	HasPhone    Presence
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Search      string
}

func (f Filters) Matches(c Contact) bool {
	if len(f.Stages) > 0 && !containsStage(f.Stages, c.Stage) {
		return false
	}
	if !f.HasEmail.matches(c.Email) || !f.HasPhone.matches(c.Phone) {
		return false
	}
	if f.CreatedFrom != nil && c.CreatedAt.Before(startOfDay(*f.CreatedFrom)) {
		return false
	}
	if f.CreatedTo != nil && !c.CreatedAt.Before(startOfDay(*f.CreatedTo).AddDate(0, 0, 1)) {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	haystack := strings.Join([]string{
		c.Name,
		StringValue(c.Email),
		StringValue(c.Phone),
		string(c.Stage),
		StringValue(c.Address),
		StringValue(c.Notes),
		StringValue(c.Source),
	}, " ")
	return strings.Contains(strings.ToLower(haystack), term)
}

// Apply keeps the contacts matching f, preserving order.
func (f Filters) Apply(contacts []Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func containsStage(stages []Stage, stage Stage) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BoardColumn is one kanban column.
type BoardColumn struct {
	Stage    Stage
	Title    string
	Contacts []Contact
}

// GroupByStage builds the kanban board: one column per stage in pipeline order,
// empty columns included.
func GroupByStage(contacts []Contact) []BoardColumn {
	columns := make([]BoardColumn, 0, len(stages))
	index := make(map[Stage]int, len(stages))
	for i, stage := range stages {
		index[stage] = i
		columns = append(columns, BoardColumn{Stage: stage, Title: stage.Title(), Contacts: []Contact{}})
	}
	for _, c := range contacts {
		i, ok := index[c.Stage]
		if !ok {
			continue
		}
		columns[i].Contacts = append(columns[i].Contacts, c)
	}
	return columns
}
