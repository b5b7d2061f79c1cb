package models

// Тип ячейки исходной таблицы
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
)

// Cell — одна ячейка декодированного листа. Парсер различает только
// пустые, строковые и числовые ячейки.
type Cell struct {
	Kind   CellKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Number float64  `json:"number,omitempty"`
}

func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

func StringCell(text string) Cell {
	return Cell{Kind: CellString, Text: text}
}

func NumberCell(value float64) Cell {
	return Cell{Kind: CellNumber, Number: value}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

func (c Cell) IsString() bool {
	return c.Kind == CellString
}

// Sheet — прямоугольная сетка ячеек одного листа книги.
// Все строки дополнены до одной ширины при декодировании.
type Sheet struct {
	Name string   `json:"name"`
	Rows [][]Cell `json:"rows"`
}
