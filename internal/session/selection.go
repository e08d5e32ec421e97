// Package session holds the per-connection selection state of the dashboard:
// which month, grid variable, and bubble metric are active, what the pointer
// is over, and which city detail panel is open. State is an immutable value
// advanced by a pure reducer; the Store serializes updates and notifies
// subscribers.
package session

import (
	"github.com/couchcryptid/climate-atlas/internal/domain"
)

// HoverKind distinguishes what the pointer is over.
type HoverKind string

const (
	HoverCell HoverKind = "cell"
	HoverCity HoverKind = "city"
)

// HoverRef identifies the hovered primitive: a grid cell by indices or a
// city by name. It is transient and cleared on pointer leave.
type HoverRef struct {
	Kind HoverKind `json:"kind"`
	Row  int       `json:"row,omitempty"`
	Col  int       `json:"col,omitempty"`
	City string    `json:"city,omitempty"`
}

// Selection is the full selection state. Values are never mutated in place;
// the reducer returns a new Selection per update.
type Selection struct {
	MonthIndex int             `json:"month_index"`
	Variable   domain.Variable `json:"variable"`
	Metric     domain.Metric   `json:"metric"`
	Hovered    *HoverRef       `json:"hovered,omitempty"`
	Selected   string          `json:"selected_city,omitempty"`
	Loading    bool            `json:"loading"`
}

// DefaultSelection is the state a fresh session starts from.
func DefaultSelection() Selection {
	return Selection{
		MonthIndex: 0,
		Variable:   domain.VariableTemperature,
		Metric:     domain.MetricResilience,
	}
}

// Month returns the key for the selected month index.
func (s Selection) Month() domain.MonthKey {
	key, err := domain.MonthByIndex(s.MonthIndex)
	if err != nil {
		return domain.MonthJan
	}
	return key
}

// Action is one discrete user interaction.
type Action interface{ isAction() }

// SetMonth switches the displayed month.
type SetMonth struct{ Index int }

// SetVariable switches the heatmap variable.
type SetVariable struct{ Variable domain.Variable }

// SetMetric switches the bubble metric.
type SetMetric struct{ Metric domain.Metric }

// Hover marks a primitive as hovered.
type Hover struct{ Ref HoverRef }

// ClearHover clears the hovered primitive on pointer leave.
type ClearHover struct{}

// SelectCity opens a city's detail panel. It persists until another city is
// selected or the panel is closed.
type SelectCity struct{ Name string }

// ClearSelection closes the city detail panel.
type ClearSelection struct{}

func (SetMonth) isAction()       {}
func (SetVariable) isAction()    {}
func (SetMetric) isAction()      {}
func (Hover) isAction()          {}
func (ClearHover) isAction()     {}
func (SelectCity) isAction()     {}
func (ClearSelection) isAction() {}

// Apply advances the selection by one action. Invalid inputs (out-of-range
// month, unknown variable or metric) leave the state unchanged, as does a
// month switch while a fetch is in flight.
func Apply(s Selection, a Action) Selection {
	switch a := a.(type) {
	case SetMonth:
		if s.Loading || a.Index < 0 || a.Index >= len(domain.MonthKeys) {
			return s
		}
		s.MonthIndex = a.Index
	case SetVariable:
		if _, err := domain.ParseVariable(string(a.Variable)); err != nil {
			return s
		}
		s.Variable = a.Variable
	case SetMetric:
		if _, err := domain.ParseMetric(string(a.Metric)); err != nil {
			return s
		}
		s.Metric = a.Metric
	case Hover:
		ref := a.Ref
		s.Hovered = &ref
	case ClearHover:
		s.Hovered = nil
	case SelectCity:
		if a.Name == "" {
			return s
		}
		s.Selected = a.Name
	case ClearSelection:
		s.Selected = ""
	}
	return s
}
