package state

import (
	"StockBoard/internal/model"
)

// ActionType enumerates the changes the widget can make to its state.
type ActionType int

const (
	// ActSetStats replaces the stats snapshot.
	ActSetStats ActionType = iota
	// ActSetList replaces the ticker list rows.
	ActSetList
	// ActSetPanel replaces the info panel.
	ActSetPanel
	// ActSetDescription replaces the company description.
	ActSetDescription
	// ActSetDataset replaces the series snapshot.
	ActSetDataset
	// ActRenderChart installs a freshly rendered figure and its selection.
	ActRenderChart
	// ActHover draws the guide line at a point.
	ActHover
	// ActLeave removes the guide line.
	ActLeave
)

var actionNames = [...]string{
	"SetStats", "SetList", "SetPanel", "SetDescription",
	"SetDataset", "RenderChart", "Hover", "Leave",
}

func (t ActionType) String() string {
	if int(t) < len(actionNames) {
		return actionNames[t]
	}
	return "Unknown"
}

// Action represents an action to take on the Store.
type Action struct {
	Type   ActionType
	Update any
}

// RenderUpdate is the payload of ActRenderChart.
type RenderUpdate struct {
	Selection model.Selection
	Figure    *model.Figure
}

// HoverUpdate is the payload of ActHover.
type HoverUpdate struct {
	Revision uint64
	X        string
	Label    string
	Guide    model.Shape
}

func SetStats(stats map[string]model.StatsEntry) Action {
	return Action{Type: ActSetStats, Update: stats}
}

func SetList(rows []model.ListRow) Action {
	return Action{Type: ActSetList, Update: rows}
}

func SetPanel(p model.InfoPanel) Action {
	return Action{Type: ActSetPanel, Update: p}
}

func SetDescription(desc string) Action {
	return Action{Type: ActSetDescription, Update: desc}
}

func SetDataset(ds model.Dataset) Action {
	return Action{Type: ActSetDataset, Update: ds}
}

// RenderChart installs fig as the chart for sel and clears any hover.
func RenderChart(sel model.Selection, fig *model.Figure) Action {
	return Action{Type: ActRenderChart, Update: RenderUpdate{Selection: sel, Figure: fig}}
}

// Hover draws guide at x on the figure with the given revision. Hovers aimed
// at an older revision are ignored by the modifier.
func Hover(revision uint64, x, label string, guide model.Shape) Action {
	return Action{Type: ActHover, Update: HoverUpdate{Revision: revision, X: x, Label: label, Guide: guide}}
}

// Leave clears the guide line on the figure with the given revision.
func Leave(revision uint64) Action {
	return Action{Type: ActLeave, Update: revision}
}
