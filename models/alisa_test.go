package models

import (
	"encoding/json"
	"testing"
)

// Пример запроса из документации Яндекс Диалогов
const alisaRequestJSON = `{
	"command": "закажи пиццу на улицу льва толстого 16 на завтра",
	"original_utterance": "закажи пиццу на улицу льва толстого, 16 на завтра",
	"markup": {
		"dangerous_context": true
	},
	"type": "SimpleUtterance",
	"nlu": {
		"tokens": [
			"закажи", "пиццу", "на", "лес", "льва", "толстого", "16", "на", "завтра"
		],
		"entities": [
			{
				"tokens": {"start": 2, "end": 6},
				"type": "YANDEX.GEO",
				"value": {"house_number": "16", "street": "льва толстого"}
			},
			{
				"tokens": {"start": 3, "end": 6},
				"type": "YANDEX.FIO",
				"value": {"first_name": "лев", "last_name": "толстой"}
			},
			{
				"tokens": {"start": 5, "end": 6},
				"type": "YANDEX.NUMBER",
				"value": 16
			},
			{
				"tokens": {"start": 6, "end": 8},
				"type": "YANDEX.DATETIME",
				"value": {"day": 1, "day_is_relative": true}
			}
		]
	}
}`

func TestAlisaRequestDecode(t *testing.T) {
	var req AlisaRequest
	if err := json.Unmarshal([]byte(alisaRequestJSON), &req); err != nil {
		t.Fatal(err)
	}

	if req.Command != "закажи пиццу на улицу льва толстого 16 на завтра" {
		t.Errorf("command: got %q", req.Command)
	}
	if req.OriginalUtterance != "закажи пиццу на улицу льва толстого, 16 на завтра" {
		t.Errorf("original_utterance: got %q", req.OriginalUtterance)
	}
	if req.Type != InputSimpleUtterance {
		t.Errorf("type: got %q", req.Type)
	}
	if req.Markup == nil || !req.Markup.DangerousContext {
		t.Errorf("markup: got %+v", req.Markup)
	}
	if len(req.NLU.Tokens) != 9 {
		t.Fatalf("got %d tokens, want 9", len(req.NLU.Tokens))
	}
	if req.NLU.Tokens[0] != "закажи" || req.NLU.Tokens[8] != "завтра" {
		t.Errorf("unexpected tokens: %v", req.NLU.Tokens)
	}
	if len(req.NLU.Entities) != 4 {
		t.Fatalf("got %d entities, want 4", len(req.NLU.Entities))
	}

	geoEntity := req.NLU.Entities[0]
	if geoEntity.Type != EntityGeo {
		t.Fatalf("entity 0 type: got %q", geoEntity.Type)
	}
	if geoEntity.Tokens.Start != 2 || geoEntity.Tokens.End != 6 {
		t.Errorf("entity 0 span: got %+v", geoEntity.Tokens)
	}
	geo, err := geoEntity.Geo()
	if err != nil {
		t.Fatal(err)
	}
	if geo.Street == nil || *geo.Street != "льва толстого" {
		t.Errorf("street: got %v", geo.Street)
	}
	if geo.HouseNumber == nil || *geo.HouseNumber != "16" {
		t.Errorf("house_number: got %v", geo.HouseNumber)
	}
	if geo.Airport != nil || geo.City != nil {
		t.Errorf("unexpected geo fields: %+v", geo)
	}

	fio, err := req.NLU.Entities[1].FIO()
	if err != nil {
		t.Fatal(err)
	}
	if fio.FirstName == nil || *fio.FirstName != "лев" {
		t.Errorf("first_name: got %v", fio.FirstName)
	}
	if fio.LastName == nil || *fio.LastName != "толстой" {
		t.Errorf("last_name: got %v", fio.LastName)
	}
	if fio.PatronymicName != nil {
		t.Errorf("patronymic present: %v", *fio.PatronymicName)
	}

	number, err := req.NLU.Entities[2].Number()
	if err != nil {
		t.Fatal(err)
	}
	if number != 16 {
		t.Errorf("number: got %v", number)
	}

	dt, err := req.NLU.Entities[3].DateTime()
	if err != nil {
		t.Fatal(err)
	}
	if dt.Day == nil || *dt.Day != 1 || !dt.DayIsRelative {
		t.Errorf("datetime: got %+v", dt)
	}
	if dt.Year != nil || dt.YearIsRelative {
		t.Errorf("unexpected year fields: %+v", dt)
	}
}

func TestAlisaEntityTypeMismatch(t *testing.T) {
	entity := AlisaEntity{Type: EntityNumber, Value: json.RawMessage(`16`)}
	if _, err := entity.Geo(); err == nil {
		t.Error("expected an error decoding a number entity as geo")
	}
	if _, err := entity.Number(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
