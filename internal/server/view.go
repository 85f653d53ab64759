package server

import (
	"StockBoard/internal/model"
	"StockBoard/internal/state"
)

// View is everything the page needs to draw the widget.
type View struct {
	Version     uint64          `json:"version"`
	List        []model.ListRow `json:"list"`
	Panel       model.InfoPanel `json:"panel"`
	Description string          `json:"description"`
	Selection   model.Selection `json:"selection"`
	HoverLabel  string          `json:"hoverLabel"`
	Chart       *model.Figure   `json:"chart"`
}

// NewView projects a committed state onto the page.
func NewView(st state.State) View {
	d := st.Data
	list := d.List
	if list == nil {
		list = []model.ListRow{}
	}
	return View{
		Version:     st.Version,
		List:        list,
		Panel:       d.Panel,
		Description: d.Description,
		Selection:   d.Selection,
		HoverLabel:  d.Hover.Label,
		Chart:       d.Chart,
	}
}
