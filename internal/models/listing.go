package models

import (
	"time"

	"github.com/google/uuid"
)

// Purpose определяет тип сделки объявления
type Purpose string

const (
	PurposeSale     Purpose = "sale"
	PurposeRequired Purpose = "required"
	PurposeRent     Purpose = "rent"
)

// Valid проверяет, что значение входит в допустимый набор
func (p Purpose) Valid() bool {
	switch p {
	case PurposeSale, PurposeRequired, PurposeRent:
		return true
	}
	return false
}

// Complement возвращает встречный тип сделки: продажа <-> спрос.
// Для аренды встречного типа нет.
func (p Purpose) Complement() (Purpose, bool) {
	switch p {
	case PurposeSale:
		return PurposeRequired, true
	case PurposeRequired:
		return PurposeSale, true
	}
	return "", false
}

// PropertyType определяет категорию недвижимости
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypePlot       PropertyType = "plot"
	PropertyTypeCommercial PropertyType = "commercial"
)

// PropertyTypes перечисляет все поддерживаемые категории
var PropertyTypes = []PropertyType{PropertyTypeHouse, PropertyTypePlot, PropertyTypeCommercial}

// Valid проверяет, что категория поддерживается
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypePlot, PropertyTypeCommercial:
		return true
	}
	return false
}

// Property представляет базовую запись объявления
type Property struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Purpose       Purpose      `json:"purpose"`
	PropertyType  PropertyType `json:"property_type"`
	Category      string       `json:"category"`
	City          string       `json:"city"`
	Location      string       `json:"location"`
	Marla         int          `json:"marla"`
	TotalPrice    *float64     `json:"total_price"`
	FromPrice     *float64     `json:"from_price"`
	ToPrice       *float64     `json:"to_price"`
	ContactName   string       `json:"contact_name"`
	ContactNumber string       `json:"contact_number"`
	IsNotified    bool         `json:"is_notified"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Extension описывает набор атрибутов, специфичных для категории.
// Реализации: HouseExtension, PlotExtension, CommercialExtension.
type Extension interface {
	PropertyType() PropertyType
	// fields возвращает атрибуты под их публичными ключами
	fields() map[string]interface{}
}

// HouseExtension содержит атрибуты дома
type HouseExtension struct {
	House     string `json:"house"`
	Street    string `json:"street"`
	Bedrooms  int    `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
}

func (HouseExtension) PropertyType() PropertyType { return PropertyTypeHouse }

func (e HouseExtension) fields() map[string]interface{} {
	return map[string]interface{}{
		"house":     e.House,
		"street":    e.Street,
		"bedrooms":  e.Bedrooms,
		"bathrooms": e.Bathrooms,
	}
}

// PlotExtension содержит атрибуты участка
type PlotExtension struct {
	SeriesFrom string `json:"series_from"`
	SeriesTo   string `json:"series_to"`
}

func (PlotExtension) PropertyType() PropertyType { return PropertyTypePlot }

func (e PlotExtension) fields() map[string]interface{} {
	return map[string]interface{}{
		"series_from": e.SeriesFrom,
		"series_to":   e.SeriesTo,
	}
}

// CommercialExtension содержит атрибуты коммерческой недвижимости
type CommercialExtension struct {
	SeriesFrom string `json:"series_from"`
	SeriesTo   string `json:"series_to"`
	Bedrooms   *int   `json:"bedrooms"`
	Bathrooms  *int   `json:"bathrooms"`
}

func (CommercialExtension) PropertyType() PropertyType { return PropertyTypeCommercial }

func (e CommercialExtension) fields() map[string]interface{} {
	return map[string]interface{}{
		"series_from": e.SeriesFrom,
		"series_to":   e.SeriesTo,
		"bedrooms":    e.Bedrooms,
		"bathrooms":   e.Bathrooms,
	}
}

// Listing объединяет базовую запись и её расширение
type Listing struct {
	Property  Property
	Extension Extension
}
