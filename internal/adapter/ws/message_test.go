package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/session"
)

func decode(t *testing.T, raw string) clientMessage {
	t.Helper()
	var m clientMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestToAction(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want session.Action
	}{
		{
			name: "set month",
			raw:  `{"action":"set_month","month":5}`,
			want: session.SetMonth{Index: 5},
		},
		{
			name: "set month zero",
			raw:  `{"action":"set_month","month":0}`,
			want: session.SetMonth{Index: 0},
		},
		{
			name: "set variable",
			raw:  `{"action":"set_variable","variable":"sunshine"}`,
			want: session.SetVariable{Variable: domain.VariableSunshine},
		},
		{
			name: "set metric",
			raw:  `{"action":"set_metric","metric":"heat_days"}`,
			want: session.SetMetric{Metric: domain.MetricHeatDays},
		},
		{
			name: "hover cell",
			raw:  `{"action":"hover","kind":"cell","row":3,"col":7}`,
			want: session.Hover{Ref: session.HoverRef{Kind: session.HoverCell, Row: 3, Col: 7}},
		},
		{
			name: "hover city",
			raw:  `{"action":"hover","kind":"city","city":"Oslo"}`,
			want: session.Hover{Ref: session.HoverRef{Kind: session.HoverCity, City: "Oslo"}},
		},
		{
			name: "clear hover",
			raw:  `{"action":"clear_hover"}`,
			want: session.ClearHover{},
		},
		{
			name: "select city",
			raw:  `{"action":"select_city","city":"Porto"}`,
			want: session.SelectCity{Name: "Porto"},
		},
		{
			name: "clear selection",
			raw:  `{"action":"clear_selection"}`,
			want: session.ClearSelection{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decode(t, tc.raw).toAction()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToAction_Rejected(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown action", `{"action":"teleport"}`},
		{"set month without index", `{"action":"set_month"}`},
		{"hover without kind", `{"action":"hover","row":1}`},
		{"hover unknown kind", `{"action":"hover","kind":"country"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decode(t, tc.raw).toAction()
			assert.Error(t, err)
		})
	}
}
