package models

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// Bio: структурированное содержимое колонки users.bio.
// Все поля необязательные; пустой Bio{}: допустимое значение по умолчанию.
type Bio struct {
	Profile        BioProfile       `json:"profile"`
	WorkExperience []WorkExperience `json:"workExperience,omitempty" validate:"omitempty,max=50,dive"`
	Portfolio      []PortfolioItem  `json:"portfolio,omitempty" validate:"omitempty,max=100,dive"`
}

type BioProfile struct {
	Headline   string   `json:"headline,omitempty" validate:"max=120"`
	Summary    string   `json:"summary,omitempty" validate:"max=5000"`
	Location   string   `json:"location,omitempty" validate:"max=120"`
	HourlyRate *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	Skills     []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=50"`
	Website    string   `json:"website,omitempty" validate:"omitempty,url"`
}

type WorkExperience struct {
	Company     string `json:"company" validate:"required,max=120"`
	Title       string `json:"title" validate:"required,max=120"`
	StartDate   string `json:"startDate,omitempty" validate:"max=32"`
	EndDate     string `json:"endDate,omitempty" validate:"max=32"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

type PortfolioItem struct {
	Title       string `json:"title" validate:"required,max=200"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// DecodeBio разбирает сырое значение колонки bio.
// Никогда не паникует: для битого или не-объектного значения возвращает Bio{} и false.
// Пустое значение и null считаются корректными.
func DecodeBio(raw []byte) (Bio, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Bio{}, true
	}

	// старые записи сохранялись как строка с JSON внутри
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return Bio{}, false
		}
		return DecodeBio([]byte(inner))
	}

	if raw[0] != '{' {
		return Bio{}, false
	}

	var bio Bio
	if err := json.Unmarshal(raw, &bio); err != nil {
		return Bio{}, false
	}
	return bio, true
}

// BioState: что NormalizeBio смог сделать с сырым значением колонки
type BioState int

const (
	BioCanonical  BioState = iota // разобрано, каноничная кодировка готова
	BioUnreadable                 // не JSON вообще, заменяется пустым профилем
	BioMismatched                 // JSON, но не по форме Bio; такие значения не трогаем
)

// ключи верхнего уровня, которыми владеет Bio; остальные ключи blob сохраняются как есть
var bioKeys = []string{"profile", "workExperience", "portfolio"}

// NormalizeBio приводит сырое значение к каноничной кодировке.
// Незнакомые ключи верхнего уровня сохраняются. Для BioMismatched результат nil.
func NormalizeBio(raw []byte) (datatypes.JSON, BioState, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		out, err := EncodeBio(Bio{})
		return out, BioCanonical, err
	}
	if !json.Valid(raw) {
		out, err := EncodeBio(Bio{})
		return out, BioUnreadable, err
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, BioMismatched, nil
		}
		trimmed := bytes.TrimSpace([]byte(inner))
		if len(trimmed) > 0 && trimmed[0] != '{' {
			return nil, BioMismatched, nil
		}
		return NormalizeBio(trimmed)
	}

	var bio Bio
	if raw[0] != '{' || json.Unmarshal(raw, &bio) != nil {
		return nil, BioMismatched, nil
	}
	out, err := MergeBio(raw, bio)
	return out, BioCanonical, err
}

// MergeBio записывает поля bio поверх existing, не теряя чужих ключей верхнего уровня.
// existing, который не является JSON-объектом (в том числе старой строкой с JSON), даёт только поля bio.
func MergeBio(existing []byte, bio Bio) (datatypes.JSON, error) {
	fields := bioObjectFields(existing)

	encoded, err := json.Marshal(bio)
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &known); err != nil {
		return nil, err
	}

	for _, key := range bioKeys {
		delete(fields, key)
	}
	for key, value := range known {
		fields[key] = value
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func bioObjectFields(raw []byte) map[string]json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if json.Unmarshal(raw, &inner) == nil {
			raw = bytes.TrimSpace([]byte(inner))
		}
	}

	var fields map[string]json.RawMessage
	if len(raw) == 0 || raw[0] != '{' || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

// EncodeBio сериализует Bio в каноничный вид для записи в БД
func EncodeBio(bio Bio) (datatypes.JSON, error) {
	data, err := json.Marshal(bio)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
