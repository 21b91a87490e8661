package models

import "github.com/google/uuid"

// Field логическое имя фильтруемого поля
type Field string

const (
	FieldPropertyType Field = "property_type"
	FieldPurpose      Field = "purpose"
	FieldCategory     Field = "category"
	FieldCity         Field = "city"
	FieldLocation     Field = "location"
	FieldMarla        Field = "marla"
	FieldFromPrice    Field = "from_price"
	FieldToPrice      Field = "to_price"
	FieldHouse        Field = "house"
	FieldStreet       Field = "street"
	FieldBedrooms     Field = "bedrooms"
	FieldBathrooms    Field = "bathrooms"
	FieldSeriesFrom   Field = "series_from"
	FieldSeriesTo     Field = "series_to"
)

// Operator вид сравнения в предикате
type Operator string

const (
	OpContains Operator = "contains"
	OpEqual    Operator = "eq"
	OpGTE      Operator = "gte"
	OpLTE      Operator = "lte"
)

// Predicate одно условие фильтра
type Predicate struct {
	Field Field
	Op    Operator
	Value interface{}
}

// PredicateSet набор условий, объединяемых через AND
type PredicateSet struct {
	PropertyType PropertyType
	Predicates   []Predicate
}

// PropertyQuery параметры выборки объявлений для ленты, инвентаря и избранного
type PropertyQuery struct {
	OwnerID        *uuid.UUID
	ExcludeOwnerID *uuid.UUID
	WishlistedBy   *uuid.UUID
	Purpose        Purpose
	PropertyType   PropertyType
	TitleContains  string
	Limit          int
	Offset         int
}

// MatchQuery параметры поиска встречных объявлений для уведомлений
type MatchQuery struct {
	PropertyType      PropertyType
	Purpose           Purpose
	City              string
	Location          string
	ExcludePropertyID uuid.UUID
	ExcludeOwnerID    uuid.UUID
}
