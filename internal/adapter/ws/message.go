package ws

import (
	"fmt"

	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/session"
)

// clientMessage is one inbound action frame. Action selects the variant;
// the other fields are read only where the variant needs them.
type clientMessage struct {
	Action string `json:"action"`

	Month    *int   `json:"month,omitempty"`
	Variable string `json:"variable,omitempty"`
	Metric   string `json:"metric,omitempty"`

	Kind string `json:"kind,omitempty"`
	Row  int    `json:"row,omitempty"`
	Col  int    `json:"col,omitempty"`
	City string `json:"city,omitempty"`
}

// toAction maps a decoded frame to a session action. Unknown action names
// and malformed frames are rejected here; value-level validation (month
// range, known variable) is the reducer's job.
func (m clientMessage) toAction() (session.Action, error) {
	switch m.Action {
	case "set_month":
		if m.Month == nil {
			return nil, fmt.Errorf("set_month requires a month index")
		}
		return session.SetMonth{Index: *m.Month}, nil
	case "set_variable":
		return session.SetVariable{Variable: domain.Variable(m.Variable)}, nil
	case "set_metric":
		return session.SetMetric{Metric: domain.Metric(m.Metric)}, nil
	case "hover":
		switch session.HoverKind(m.Kind) {
		case session.HoverCell:
			return session.Hover{Ref: session.HoverRef{Kind: session.HoverCell, Row: m.Row, Col: m.Col}}, nil
		case session.HoverCity:
			return session.Hover{Ref: session.HoverRef{Kind: session.HoverCity, City: m.City}}, nil
		}
		return nil, fmt.Errorf("hover requires kind %q or %q", session.HoverCell, session.HoverCity)
	case "clear_hover":
		return session.ClearHover{}, nil
	case "select_city":
		return session.SelectCity{Name: m.City}, nil
	case "clear_selection":
		return session.ClearSelection{}, nil
	}
	return nil, fmt.Errorf("unknown action %q", m.Action)
}
