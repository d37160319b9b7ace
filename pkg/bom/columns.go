package bom

// Column names of the two input tables.
const (
	// AssemblyColumn holds the join key of the count report.
	AssemblyColumn = "Codigo_Montagem"

	// CountColumn holds the counted quantity of the count report.
	CountColumn = "Contagem"

	// InstanceColumn holds the join key of the lookup table.
	InstanceColumn = "CODIGO INSTÂNCIA"
)

// SlotColumn names the material and quantity columns of one slot.
type SlotColumn struct {
	Material string
	Quantity string
}

// SlotColumns lists the lookup table column pairs, slot 1 first.
var SlotColumns = [SlotCount]SlotColumn{
	{"CODIGO MONTAGEM 01", "QUANTIDADE MONTAGEM 01"},
	{"CODIGO MONTAGEM 02", "QUANTIDADE MONTAGEM 02"},
	{"CODIGO MONTAGEM 03", "QUANTIDADE MONTAGEM 03"},
	{"CODIGO MONTAGEM 04", "QUANTIDADE MONTAGEM 04"},
	{"CODIGO MONTAGEM 05", "QUANTIDADE MONTAGEM 05"},
	{"CODIGO MONTAGEM 06", "QUANTIDADE MONTAGEM 06"},
	{"CODIGO MONTAGEM 07", "QUANTIDADE MONTAGEM 07"},
	{"CODIGO MONTAGEM 08", "QUANTIDADE MONTAGEM 08"},
	{"CODIGO MONTAGEM 09", "QUANTIDADE MONTAGEM 09"},
	{"CODIGO MONTAGEM 10", "QUANTIDADE MONTAGEM 10"},
	{"CODIGO MONTAGEM 11", "QUANTIDADE MONTAGEM 11"},
	{"CODIGO MONTAGEM 12", "QUANTIDADE MONTAGEM 12"},
	{"CODIGO MONTAGEM 13", "QUANTIDADE MONTAGEM 13"},
	{"CODIGO MONTAGEM 14", "QUANTIDADE MONTAGEM 14"},
	{"CODIGO MONTAGEM 15", "QUANTIDADE MONTAGEM 15"},
}

// RequiredLookupColumns returns every column the lookup table must carry.
func RequiredLookupColumns() []string {
	cols := make([]string, 0, 1+2*SlotCount)
	cols = append(cols, InstanceColumn)
	for _, sc := range SlotColumns {
		cols = append(cols, sc.Material, sc.Quantity)
	}
	return cols
}

// RequiredCountColumns returns every column the count report must carry.
func RequiredCountColumns() []string {
	return []string{AssemblyColumn, CountColumn}
}
