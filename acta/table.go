package acta

import "github.com/ByLCY/acta/layout"

// BuildAssetTable lays the items out one per row. The shared description
// goes in the last column of row 0 with RowSpan len(items); the other rows
// carry an empty placeholder there so the renderer merges the column.
// No items gives ErrNoLineItems.
func BuildAssetTable(items []Asset, description string, tpl TableTemplate) (layout.TableSpec, error) {
	if len(items) == 0 {
		return layout.TableSpec{}, ErrNoLineItems
	}
	spec := layout.TableSpec{
		Header:  append([]string(nil), tpl.Header...),
		Columns: append([]float64(nil), tpl.Columns...),
		Rows:    make([]layout.RowSpec, len(items)),
	}
	if len(spec.Columns) == 0 {
		spec.Columns = nil
	}
	for i, a := range items {
		row := layout.RowSpec{
			{Content: a.Code},
			{Content: a.Name},
			{Content: a.Location},
			{Content: a.Category},
			{Content: a.Subcategory},
			{Content: a.Status},
			{},
		}
		if i == 0 {
			row[AssetColumns-1] = layout.CellSpec{
				Content: description,
				RowSpan: len(items),
				Align:   layout.AlignMiddle,
			}
		}
		spec.Rows[i] = row
	}
	return spec, nil
}
