package tables

import (
	"github.com/agentstation/bomtally/pkg/bom"
)

// Lookup extracts the lookup rows of t in table order. The instance code
// column and all fifteen slot column pairs must be present.
func Lookup(t *Table) ([]bom.LookupRow, error) {
	idx, err := t.Require("lookup", bom.RequiredLookupColumns()...)
	if err != nil {
		return nil, err
	}

	rows := make([]bom.LookupRow, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row := bom.LookupRow{InstanceCode: Value(cells[idx[0]])}
		for i := range row.Slots {
			row.Slots[i] = bom.Slot{
				Material: Value(cells[idx[1+2*i]]),
				Quantity: Value(cells[idx[2+2*i]]),
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
