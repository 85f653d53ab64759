package state

import "StockBoard/internal/model"

// Data is the widget's state. Values stored in it are never mutated; every
// change replaces the affected field.
type Data struct {
	// Stats is the last fetched ticker -> stats snapshot.
	Stats map[string]model.StatsEntry
	// Dataset is the last fetched series snapshot.
	Dataset model.Dataset
	// Selection is the ticker/range on the chart.
	Selection model.Selection
	// List holds the ticker list rows in display order.
	List []model.ListRow
	// Panel is the info panel above the chart.
	Panel model.InfoPanel
	// Description is the company summary for the selected ticker.
	Description string
	// Chart is the rendered figure, nil until the first render.
	Chart *model.Figure
	// Hover is the current pointer state over the chart.
	Hover model.Hover
}

// Field names usable with Store.Subscribe.
const (
	FieldStats       = "Stats"
	FieldDataset     = "Dataset"
	FieldSelection   = "Selection"
	FieldList        = "List"
	FieldPanel       = "Panel"
	FieldDescription = "Description"
	FieldChart       = "Chart"
	FieldHover       = "Hover"
)
