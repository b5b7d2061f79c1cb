package services

import "fmt"

// Ошибки формы исходной таблицы. Все они локальны для одного листа и
// содержат координаты, достаточные для диагностики битого файла.
// Отсутствие занятия в ячейке ошибкой не является.

// WrongSheetCountError — в книге не ровно 4 листа
type WrongSheetCountError struct {
	Got int
}

func (e *WrongSheetCountError) Error() string {
	return fmt.Sprintf("workbook must have %d sheets, got %d", SheetsPerWorkbook, e.Got)
}

// SheetTooShortError — на листе нет даже двух строк заголовка
type SheetTooShortError struct {
	Rows int
}

func (e *SheetTooShortError) Error() string {
	return fmt.Sprintf("sheet has %d rows, need at least %d header rows", e.Rows, headerRows)
}

// CellTypeMismatchError — ячейка, обязанная быть строковой, имеет
// другой тип. Row и Col — индексы с нуля.
type CellTypeMismatchError struct {
	Row int
	Col int
}

func (e *CellTypeMismatchError) Error() string {
	return fmt.Sprintf("cell at row %d, col %d must be a string", e.Row, e.Col)
}

// SubgroupNumberError — непустая ячейка заголовка подгрупп не
// разбирается как небольшое положительное число
type SubgroupNumberError struct {
	Col  int
	Text string
}

func (e *SubgroupNumberError) Error() string {
	return fmt.Sprintf("cannot parse subgroup number %q at col %d", e.Text, e.Col)
}

// RowColumnCountMismatchError — число колонок строки тела не сошлось
// с числом недельных колонок листа
type RowColumnCountMismatchError struct {
	Row      int
	Expected int
	Actual   int
}

func (e *RowColumnCountMismatchError) Error() string {
	return fmt.Sprintf("row %d has %d week columns, expected %d", e.Row, e.Actual, e.Expected)
}

// TooManyRowsError — в теле листа больше 49 пар строк
type TooManyRowsError struct {
	Pairs int
}

func (e *TooManyRowsError) Error() string {
	return fmt.Sprintf("too many lesson rows in a sheet, got %d pairs", e.Pairs)
}

// GroupCountMismatchError — число имён групп не сошлось с числом
// кластеров подгрупп
type GroupCountMismatchError struct {
	Names    int
	Clusters int
}

func (e *GroupCountMismatchError) Error() string {
	return fmt.Sprintf("have %d group names, but %d subgroup clusters", e.Names, e.Clusters)
}

// SheetError привязывает ошибку разбора к листу книги
type SheetError struct {
	Index int
	Name  string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %d %q: %v", e.Index, e.Name, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
