package state

import "StockBoard/internal/model"

// Modifier takes the existing state and an action and returns the new state.
// It must not mutate anything reachable from state; reference fields are
// replaced, never edited in place.
type Modifier func(state Data, action Action) Data

// Modifiers is every Modifier the widget store runs, in order.
var Modifiers = []Modifier{Snapshots, View, ChartView}

// Snapshots handles the fetched data actions.
func Snapshots(s Data, a Action) Data {
	switch a.Type {
	case ActSetStats:
		s.Stats = a.Update.(map[string]model.StatsEntry)
	case ActSetDataset:
		s.Dataset = a.Update.(model.Dataset)
	}
	return s
}

// View handles the list, panel and description actions.
func View(s Data, a Action) Data {
	switch a.Type {
	case ActSetList:
		s.List = a.Update.([]model.ListRow)
	case ActSetPanel:
		s.Panel = a.Update.(model.InfoPanel)
	case ActSetDescription:
		s.Description = a.Update.(string)
	}
	return s
}

// ChartView handles rendering and hover actions.
func ChartView(s Data, a Action) Data {
	switch a.Type {
	case ActRenderChart:
		u := a.Update.(RenderUpdate)
		s.Selection = u.Selection
		s.Chart = u.Figure
		s.Hover = model.Hover{}
	case ActHover:
		u := a.Update.(HoverUpdate)
		if s.Chart == nil || s.Chart.Revision != u.Revision {
			break
		}
		s.Chart = s.Chart.WithShapes([]model.Shape{u.Guide})
		s.Hover = model.Hover{X: u.X, Label: u.Label}
	case ActLeave:
		rev := a.Update.(uint64)
		if s.Chart == nil || s.Chart.Revision != rev {
			break
		}
		if len(s.Chart.Layout.Shapes) > 0 {
			s.Chart = s.Chart.WithShapes(nil)
		}
		s.Hover = model.Hover{}
	}
	return s
}
