package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/VlaDexa/misisa/models"
)

// Геометрия листа. Структура закодирована только положением ячеек:
// две строки заголовка, три служебные колонки слева, дальше по две
// колонки (описание занятия и аудитория) на каждую недельную колонку.
const (
	// SheetsPerWorkbook — книга расписания всегда содержит 4 листа,
	// по одному на курс
	SheetsPerWorkbook = 4

	headerRows   = 2
	groupNameRow = 0
	subgroupRow  = 1

	leadInCells    = 3
	cellsPerColumn = 2

	maxSubgroupNumber = 255
)

// ParserService восстанавливает типизированное расписание из сетки
// ячеек книги
type ParserService struct{}

func NewParserService() *ParserService {
	return &ParserService{}
}

// SheetResult — итог независимого разбора одного листа
type SheetResult struct {
	Name   string
	Course models.Course
	Err    error
}

// ParseSheets разбирает все листы книги независимо и параллельно.
// Ошибка одного листа не мешает разбору остальных; каждый результат
// лежит в своём слоте в исходном порядке листов.
func (s *ParserService) ParseSheets(sheets []models.Sheet) ([]SheetResult, error) {
	if len(sheets) != SheetsPerWorkbook {
		return nil, &WrongSheetCountError{Got: len(sheets)}
	}

	results := make([]SheetResult, len(sheets))
	var wg sync.WaitGroup
	for i := range sheets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			course, err := parseSheet(sheets[i])
			results[i] = SheetResult{Name: sheets[i].Name, Course: course, Err: err}
		}(i)
	}
	wg.Wait()

	return results, nil
}

// ParseWorkbook разбирает книгу целиком. При ошибках возвращает их
// все разом, с указанием каждого сбойного листа.
func (s *ParserService) ParseWorkbook(sheets []models.Sheet) ([]models.Course, error) {
	results, err := s.ParseSheets(sheets)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(results))
	var errs []error
	for i, res := range results {
		if res.Err != nil {
			errs = append(errs, &SheetError{Index: i, Name: res.Name, Err: res.Err})
			continue
		}
		courses = append(courses, res.Course)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return courses, nil
}

func parseSheet(sheet models.Sheet) (models.Course, error) {
	if len(sheet.Rows) < headerRows {
		return models.Course{}, &SheetTooShortError{Rows: len(sheet.Rows)}
	}

	clusters, err := parseSubgroupHeader(sheet.Rows[subgroupRow])
	if err != nil {
		return models.Course{}, err
	}

	weeks, err := scanBody(sheet.Rows[headerRows:], weekColumns(clusters))
	if err != nil {
		return models.Course{}, err
	}

	groups, err := assembleGroups(sheet.Rows[groupNameRow], clusters, weeks)
	if err != nil {
		return models.Course{}, err
	}

	return models.Course{Name: sheet.Name, Groups: groups}, nil
}

// parseClass разбирает пару ячеек «описание занятия» и «аудитория».
// Формат описания:
//
//	Название (Тип)
//	Преподаватель?
//
// Аудитория лежит в соседней ячейке. nil означает окно в расписании —
// это штатный исход, а не ошибка.
func parseClass(description, room models.Cell) *models.Class {
	if !description.IsString() {
		return nil
	}

	name, rest, found := strings.Cut(description.Text, " (")
	if !found {
		return nil
	}

	label, teacher, hasTeacher := strings.Cut(rest, "\n")
	if hasTeacher && strings.TrimSpace(teacher) == "" {
		hasTeacher = false
	}

	label, found = strings.CutSuffix(label, ")")
	if !found {
		return nil
	}

	if !room.IsString() {
		return nil
	}

	class := &models.Class{
		Name:      name,
		ClassType: models.ClassTypeFromLabel(label),
		Room:      room.Text,
	}
	if hasTeacher {
		class.Teacher = &teacher
	}
	return class
}

// subgroupCluster — кластер колонок одной группы: nil — одна колонка
// без подгрупп, иначе по колонке на каждый номер подгруппы.
type subgroupCluster []int

// clusterScanner — автомат однопроходного разбора строки номеров
// подгрупп. Состояния: Idle (accumulating == false) и Accumulating;
// переходы по виду ячейки — пустая, растущий номер, невозрастающий
// номер.
type clusterScanner struct {
	clusters     []subgroupCluster
	current      []int
	accumulating bool
	seen         int
}

// boundary обрабатывает пустую ячейку: закрывает накопленный кластер.
// Сама пустая ячейка — колонка группы без подгрупп, её nil попадёт в
// вывод при следующем закрытии.
func (s *clusterScanner) boundary() {
	if s.seen > 0 {
		s.flush()
	}
	s.current = nil
	s.accumulating = false
	s.seen++
}

// number обрабатывает ячейку с номером подгруппы
func (s *clusterScanner) number(n int) {
	if !s.accumulating {
		// Начало нового кластера. Если это не первая ячейка,
		// предыдущая группа была без подгрупп
		if s.seen > 0 {
			s.clusters = append(s.clusters, nil)
		}
		s.accumulating = true
		s.current = nil
	}

	if len(s.current) > 0 && n <= s.current[len(s.current)-1] {
		// Номер не вырос: две группы с подгруппами примыкают без
		// пустой колонки-разделителя, начинаем новый кластер
		s.clusters = append(s.clusters, subgroupCluster(s.current))
		s.current = []int{n}
	} else {
		s.current = append(s.current, n)
	}
	s.seen++
}

func (s *clusterScanner) flush() {
	if s.accumulating {
		s.clusters = append(s.clusters, subgroupCluster(s.current))
	} else {
		s.clusters = append(s.clusters, nil)
	}
}

// finish закрывает последний кластер и отдаёт результат
func (s *clusterScanner) finish() []subgroupCluster {
	s.flush()
	return s.clusters
}

// parseSubgroupHeader разбирает строку номеров подгрупп в кластеры
// колонок. Берётся каждая вторая ячейка начиная с четвёртой:
// объединённые колонки аудиторий между ними гарантированно пусты.
func parseSubgroupHeader(row []models.Cell) ([]subgroupCluster, error) {
	var scan clusterScanner
	for col := leadInCells; col < len(row); col += cellsPerColumn {
		cell := row[col]
		if cell.IsEmpty() {
			scan.boundary()
			continue
		}
		if !cell.IsString() {
			return nil, &CellTypeMismatchError{Row: subgroupRow, Col: col}
		}
		n, err := strconv.Atoi(cell.Text)
		if err != nil || n < 1 || n > maxSubgroupNumber {
			return nil, &SubgroupNumberError{Col: col, Text: cell.Text}
		}
		scan.number(n)
	}
	return scan.finish(), nil
}

// weekColumns считает недельные колонки листа: по одной на подгруппу
// и по одной на группу без подгрупп
func weekColumns(clusters []subgroupCluster) int {
	total := 0
	for _, cluster := range clusters {
		if cluster == nil {
			total++
		} else {
			total += len(cluster)
		}
	}
	return total
}

// scanBody обходит тело листа неперекрывающимися парами строк
// (верхняя и нижняя неделя одной пары занятий) и раскладывает занятия
// по заранее выделенным недельным буферам. Последняя строка без пары
// игнорируется.
func scanBody(rows [][]models.Cell, columns int) ([]models.Week, error) {
	weeks := make([]models.Week, columns)

	for pair := 0; pair*2+1 < len(rows); pair++ {
		if pair >= models.DaysPerWeek*models.LessonsPerDay {
			return nil, &TooManyRowsError{Pairs: pair + 1}
		}
		// Понедельник — нулевой день, первая пара — нулевая
		day := pair / models.LessonsPerDay
		lesson := pair % models.LessonsPerDay

		upper := rows[pair*2]
		lower := rows[pair*2+1]
		if err := checkRowWidth(upper, pair*2, columns); err != nil {
			return nil, err
		}
		if err := checkRowWidth(lower, pair*2+1, columns); err != nil {
			return nil, err
		}

		for col := 0; col < columns; col++ {
			at := leadInCells + col*cellsPerColumn
			dayBuf := &weeks[col][day]
			dayBuf.UpperClasses[lesson] = parseClass(upper[at], upper[at+1])
			dayBuf.LowerClasses[lesson] = parseClass(lower[at], lower[at+1])
		}
	}

	return weeks, nil
}

// checkRowWidth проверяет, что после служебных колонок в строке ровно
// columns пар ячеек. Row в ошибке — индекс строки на листе.
func checkRowWidth(row []models.Cell, bodyRow, columns int) error {
	got := 0
	if len(row) > leadInCells {
		got = (len(row) - leadInCells) / cellsPerColumn
	}
	if got != columns {
		return &RowColumnCountMismatchError{
			Row:      headerRows + bodyRow,
			Expected: columns,
			Actual:   got,
		}
	}
	return nil
}

// assembleGroups сшивает имена групп, кластеры подгрупп и недельные
// буферы в список групп. Буферы потребляются слева направо в том же
// порядке колонок, что и при сканировании тела.
func assembleGroups(nameRow []models.Cell, clusters []subgroupCluster, weeks []models.Week) ([]models.GroupInfo, error) {
	// Объединённые ячейки дают меньше строковых ячеек, чем колонок:
	// фильтр оставляет ровно по одному имени на кластер
	var names []string
	for col := leadInCells; col < len(nameRow); col++ {
		if nameRow[col].IsString() {
			names = append(names, nameRow[col].Text)
		}
	}
	if len(names) != len(clusters) {
		return nil, &GroupCountMismatchError{Names: len(names), Clusters: len(clusters)}
	}

	groups := make([]models.GroupInfo, 0, len(names))
	next := 0
	for i, name := range names {
		cluster := clusters[i]
		if cluster == nil {
			groups = append(groups, models.GroupInfo{
				Name:      name,
				Subgroups: models.WithoutSubgroup(weeks[next]),
			})
			next++
			continue
		}

		subgroups := make([]models.Subgroup, 0, len(cluster))
		for _, number := range cluster {
			subgroups = append(subgroups, models.Subgroup{Number: number, Days: weeks[next]})
			next++
		}
		groups = append(groups, models.GroupInfo{
			Name:      name,
			Subgroups: models.WithSubgroups(subgroups),
		})
	}

	return groups, nil
}
