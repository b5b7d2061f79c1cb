package models

// Вид занятия
type ClassKind string

const (
	ClassLecture  ClassKind = "lecture"
	ClassPractice ClassKind = "practice"
	ClassLab      ClassKind = "lab"
	ClassUnknown  ClassKind = "unknown"
)

// Метки видов занятий в исходных таблицах
const (
	lectureLabel  = "Лекционные"
	practiceLabel = "Практические"
	labLabel      = "Лабораторные"
)

// ClassType — вид занятия. Label заполняется только для неизвестных
// меток и хранит исходный текст из ячейки.
type ClassType struct {
	Kind  ClassKind `json:"kind"`
	Label string    `json:"label,omitempty"`
}

// ClassTypeFromLabel сопоставляет метку из таблицы с видом занятия.
// Сопоставление чувствительно к регистру; нераспознанная метка не
// является ошибкой.
func ClassTypeFromLabel(label string) ClassType {
	switch label {
	case lectureLabel:
		return ClassType{Kind: ClassLecture}
	case practiceLabel:
		return ClassType{Kind: ClassPractice}
	case labLabel:
		return ClassType{Kind: ClassLab}
	default:
		return ClassType{Kind: ClassUnknown, Label: label}
	}
}

// Class — одно занятие в расписании
type Class struct {
	Name      string    `json:"name"`
	ClassType ClassType `json:"class_type"`
	Teacher   *string   `json:"teacher,omitempty"`
	Room      string    `json:"room"`
}

// Число дней недели и пар в дне
const (
	DaysPerWeek   = 7
	LessonsPerDay = 7
)

// Day — расписание одного дня: по 7 слотов для занятий верхней и
// нижней недели. Индекс слота — номер пары, nil — окно.
type Day struct {
	UpperClasses [LessonsPerDay]*Class `json:"upper_classes"`
	LowerClasses [LessonsPerDay]*Class `json:"lower_classes"`
}

// Week — неделя из 7 дней, понедельник — нулевой.
type Week [DaysPerWeek]Day

// Subgroup — расписание одной подгруппы
type Subgroup struct {
	Number int  `json:"number"`
	Days   Week `json:"days"`
}

// WeekInfo — расписание группы: либо по подгруппам, либо общее.
// Заполнено ровно одно из двух полей.
type WeekInfo struct {
	Subgroups []Subgroup `json:"subgroups,omitempty"`
	Week      *Week      `json:"week,omitempty"`
}

func WithSubgroups(subgroups []Subgroup) WeekInfo {
	return WeekInfo{Subgroups: subgroups}
}

func WithoutSubgroup(week Week) WeekInfo {
	return WeekInfo{Week: &week}
}

func (w WeekInfo) HasSubgroups() bool {
	return w.Subgroups != nil
}

// GroupInfo — именованная учебная группа
type GroupInfo struct {
	Name      string   `json:"name"`
	Subgroups WeekInfo `json:"subgroups"`
}

// GetSubgroup возвращает подгруппу по номеру, nil если подгруппы нет
// или группа без подгрупп.
func (g *GroupInfo) GetSubgroup(number int) *Subgroup {
	for i := range g.Subgroups.Subgroups {
		if g.Subgroups.Subgroups[i].Number == number {
			return &g.Subgroups.Subgroups[i]
		}
	}
	return nil
}

// Course — расписание одного листа книги (курс/факультет)
type Course struct {
	Name   string      `json:"name"`
	Groups []GroupInfo `json:"groups"`
}

// FindGroup возвращает группу по имени, nil если не найдена
func (c *Course) FindGroup(name string) *GroupInfo {
	for i := range c.Groups {
		if c.Groups[i].Name == name {
			return &c.Groups[i]
		}
	}
	return nil
}
