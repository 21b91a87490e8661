package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rajivgeraev/deals-api/internal/models"
)

type valueKind int

const (
	textValue valueKind = iota
	intValue
	priceValue
)

// filterField описывает один допустимый параметр фильтра
type filterField struct {
	param string
	field models.Field
	op    models.Operator
	kind  valueKind
}

func (f filterField) parse(raw string) (interface{}, error) {
	switch f.kind {
	case intValue:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, models.NewValidationError(fmt.Sprintf("%s: a valid integer is required", f.param))
		}
		return n, nil
	case priceValue:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, models.NewValidationError(fmt.Sprintf("%s: a valid number is required", f.param))
		}
		return v, nil
	default:
		return raw, nil
	}
}

func contains(param string, field models.Field) filterField {
	return filterField{param: param, field: field, op: models.OpContains, kind: textValue}
}

func equals(param string, field models.Field) filterField {
	return filterField{param: param, field: field, op: models.OpEqual, kind: intValue}
}

var (
	priceFrom  = filterField{param: "price_from", field: models.FieldFromPrice, op: models.OpGTE, kind: priceValue}
	priceTo    = filterField{param: "price_to", field: models.FieldToPrice, op: models.OpLTE, kind: priceValue}
	seriesFrom = filterField{param: "series_from", field: models.FieldSeriesFrom, op: models.OpGTE, kind: textValue}
	seriesTo   = filterField{param: "series_to", field: models.FieldSeriesTo, op: models.OpLTE, kind: textValue}
)

// filterSpecs допустимые параметры фильтра для каждой категории
var filterSpecs = map[models.PropertyType][]filterField{
	models.PropertyTypeHouse: {
		contains("purpose", models.FieldPurpose),
		contains("category", models.FieldCategory),
		contains("city", models.FieldCity),
		contains("location", models.FieldLocation),
		contains("house", models.FieldHouse),
		contains("street", models.FieldStreet),
		equals("marla", models.FieldMarla),
		equals("bedrooms", models.FieldBedrooms),
		equals("bathrooms", models.FieldBathrooms),
		priceFrom,
		priceTo,
	},
	models.PropertyTypePlot: {
		contains("purpose", models.FieldPurpose),
		contains("category", models.FieldCategory),
		contains("city", models.FieldCity),
		contains("location", models.FieldLocation),
		seriesFrom,
		seriesTo,
		equals("marla", models.FieldMarla),
		priceFrom,
		priceTo,
	},
	models.PropertyTypeCommercial: {
		contains("category", models.FieldCategory),
		contains("city", models.FieldCity),
		contains("location", models.FieldLocation),
		seriesFrom,
		seriesTo,
		equals("bedrooms", models.FieldBedrooms),
		equals("bathrooms", models.FieldBathrooms),
		equals("marla", models.FieldMarla),
		priceFrom,
		priceTo,
	},
}

// BuildFilter превращает параметры запроса в набор предикатов для категории.
// Пустые и неизвестные параметры игнорируются.
func BuildFilter(propertyType string, params map[string]string) (models.PredicateSet, error) {
	t := models.PropertyType(propertyType)
	fields, ok := filterSpecs[t]
	if !ok {
		return models.PredicateSet{}, models.ErrInvalidCategory
	}

	set := models.PredicateSet{
		PropertyType: t,
		Predicates: []models.Predicate{
			{Field: models.FieldPropertyType, Op: models.OpEqual, Value: string(t)},
		},
	}

	for _, f := range fields {
		raw := strings.TrimSpace(params[f.param])
		if raw == "" {
			continue
		}
		value, err := f.parse(raw)
		if err != nil {
			return models.PredicateSet{}, err
		}
		set.Predicates = append(set.Predicates, models.Predicate{Field: f.field, Op: f.op, Value: value})
	}

	return set, nil
}
