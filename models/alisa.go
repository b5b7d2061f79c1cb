package models

import (
	"encoding/json"
	"fmt"
)

// Модель запроса Яндекс Диалогов (Алиса).
// https://yandex.ru/dev/dialogs/alice/doc/request.html

// Тип ввода
type AlisaInputType string

const (
	InputSimpleUtterance        AlisaInputType = "SimpleUtterance"
	InputButtonPressed          AlisaInputType = "ButtonPressed"
	InputPlaybackStarted        AlisaInputType = "AudioPlayer.PlaybackStarted"
	InputPlaybackFinished       AlisaInputType = "AudioPlayer.PlaybackFinished"
	InputPlaybackNearlyFinished AlisaInputType = "AudioPlayer.PlaybackNearlyFinished"
	InputPlaybackStopped        AlisaInputType = "AudioPlayer.PlaybackStopped"
	InputPlaybackFailed         AlisaInputType = "AudioPlayer.PlaybackFailed"
	InputPurchaseConfirmation   AlisaInputType = "Purchase.Confirmation"
	InputShowPull               AlisaInputType = "Show.Pull"
)

// Типы именованных сущностей
const (
	EntityFIO      = "YANDEX.FIO"
	EntityGeo      = "YANDEX.GEO"
	EntityDateTime = "YANDEX.DATETIME"
	EntityNumber   = "YANDEX.NUMBER"
)

// AlisaRequest — данные, полученные от пользователя
type AlisaRequest struct {
	// Нормализованный текст запроса
	Command string `json:"command"`
	// Полный текст запроса, максимум 1024 символа.
	// Значение "ping" означает тестовый запрос Диалогов.
	OriginalUtterance string `json:"original_utterance"`
	// Формальные характеристики реплики; отсутствует, если ни одно
	// из вложенных свойств не применимо
	Markup *AlisaMarkup `json:"markup,omitempty"`
	// Слова и именованные сущности, извлечённые из запроса
	NLU AlisaNLU `json:"nlu"`
	// Тип ввода
	Type AlisaInputType `json:"type"`
}

type AlisaMarkup struct {
	// Реплика с криминальным подтекстом; только true,
	// иначе свойство отсутствует в запросе
	DangerousContext bool `json:"dangerous_context"`
}

type AlisaNLU struct {
	Tokens   []string        `json:"tokens"`
	Entities []AlisaEntity   `json:"entities"`
	Intents  json.RawMessage `json:"intents,omitempty"`
}

// Границы сущности в массиве слов, нумерация с нуля.
// Start — первое слово сущности, End — первое слово после неё.
type AlisaTokenSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AlisaEntity — именованная сущность. Value хранит сырое значение,
// типизированный доступ — через методы по полю Type.
type AlisaEntity struct {
	Tokens AlisaTokenSpan  `json:"tokens"`
	Type   string          `json:"type"`
	Value  json.RawMessage `json:"value"`
}

type AlisaFIO struct {
	FirstName      *string `json:"first_name,omitempty"`
	PatronymicName *string `json:"patronymic_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
}

// AlisaGeo — либо аэропорт, либо адрес
type AlisaGeo struct {
	Airport     *string `json:"airport,omitempty"`
	Country     *string `json:"country,omitempty"`
	City        *string `json:"city,omitempty"`
	Street      *string `json:"street,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
}

// AlisaDateTime — дата и время, возможно относительные
type AlisaDateTime struct {
	Year             *int `json:"year,omitempty"`
	YearIsRelative   bool `json:"year_is_relative,omitempty"`
	Month            *int `json:"month,omitempty"`
	MonthIsRelative  bool `json:"month_is_relative,omitempty"`
	Day              *int `json:"day,omitempty"`
	DayIsRelative    bool `json:"day_is_relative,omitempty"`
	Hour             *int `json:"hour,omitempty"`
	HourIsRelative   bool `json:"hour_is_relative,omitempty"`
	Minute           *int `json:"minute,omitempty"`
	MinuteIsRelative bool `json:"minute_is_relative,omitempty"`
}

func (e AlisaEntity) decode(want string, v any) error {
	if e.Type != want {
		return fmt.Errorf("entity is %s, not %s", e.Type, want)
	}
	return json.Unmarshal(e.Value, v)
}

func (e AlisaEntity) FIO() (AlisaFIO, error) {
	var fio AlisaFIO
	err := e.decode(EntityFIO, &fio)
	return fio, err
}

func (e AlisaEntity) Geo() (AlisaGeo, error) {
	var geo AlisaGeo
	err := e.decode(EntityGeo, &geo)
	return geo, err
}

func (e AlisaEntity) DateTime() (AlisaDateTime, error) {
	var dt AlisaDateTime
	err := e.decode(EntityDateTime, &dt)
	return dt, err
}

func (e AlisaEntity) Number() (float64, error) {
	var n float64
	err := e.decode(EntityNumber, &n)
	return n, err
}
