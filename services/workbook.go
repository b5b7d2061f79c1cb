package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/VlaDexa/misisa/models"
)

// Декодирование книги в прямоугольные сетки типизированных ячеек.
// Парсер расписания работает только с сетками и не знает про формат
// файла.

// OpenWorkbook декодирует книгу с диска. Формат выбирается по
// расширению: устаревший бинарный .xls или .xlsx.
func OpenWorkbook(path string) ([]models.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		wb, err := xls.Open(path, "utf-8")
		if err != nil {
			return nil, fmt.Errorf("failed to open xls: %w", err)
		}
		return decodeXLS(wb)
	default:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open xlsx: %w", err)
		}
		defer f.Close()
		return decodeXLSX(f)
	}
}

// DecodeWorkbook декодирует XLSX книгу из потока
func DecodeWorkbook(r io.Reader) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()
	return decodeXLSX(f)
}

func decodeXLSX(f *excelize.File) ([]models.Sheet, error) {
	names := f.GetSheetList()
	sheets := make([]models.Sheet, 0, len(names))

	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}

		// excelize обрезает пустые хвосты строк; сетка дополняется
		// до ширины самой длинной строки
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}

		grid := make([][]models.Cell, len(rows))
		for r, row := range rows {
			line := make([]models.Cell, width)
			for c := range line {
				line[c] = models.EmptyCell()
			}
			for c, value := range row {
				if value == "" {
					continue
				}
				line[c] = typeXLSXCell(f, name, c, r, value)
			}
			grid[r] = line
		}

		sheets = append(sheets, models.Sheet{Name: name, Rows: grid})
	}

	return sheets, nil
}

// typeXLSXCell типизирует непустую ячейку: excelize отдаёт значения
// строками, тип хранится атрибутом ячейки. Числовые ячейки идут без
// атрибута типа.
func typeXLSXCell(f *excelize.File, sheet string, col, row int, value string) models.Cell {
	cellName, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return models.StringCell(value)
	}
	kind, err := f.GetCellType(sheet, cellName)
	if err == nil && (kind == excelize.CellTypeSharedString || kind == excelize.CellTypeInlineString) {
		return models.StringCell(value)
	}
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return models.NumberCell(number)
	}
	return models.StringCell(value)
}

// decodeXLS декодирует бинарную книгу. Формат не хранит типы ячеек в
// доступном библиотеке виде, поэтому все непустые ячейки строковые.
func decodeXLS(wb *xls.WorkBook) ([]models.Sheet, error) {
	sheets := make([]models.Sheet, 0, wb.NumSheets())

	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}

		rowCount := int(ws.MaxRow) + 1
		width := 0
		for r := 0; r < rowCount; r++ {
			if row := ws.Row(r); row != nil && row.LastCol() > width {
				width = row.LastCol()
			}
		}

		grid := make([][]models.Cell, rowCount)
		for r := 0; r < rowCount; r++ {
			line := make([]models.Cell, width)
			for c := range line {
				line[c] = models.EmptyCell()
			}
			if row := ws.Row(r); row != nil {
				for c := row.FirstCol(); c < row.LastCol() && c < width; c++ {
					if c < 0 {
						continue
					}
					if text := row.Col(c); text != "" {
						line[c] = models.StringCell(text)
					}
				}
			}
			grid[r] = line
		}

		sheets = append(sheets, models.Sheet{Name: ws.Name, Rows: grid})
	}

	return sheets, nil
}
