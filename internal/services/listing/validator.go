package listing

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rajivgeraev/deals-api/internal/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://deals-api.local/schemas/"

// Validator проверяет тело запроса на создание объявления по JSON Schema категории
type Validator struct {
	schemas map[models.PropertyType]*jsonschema.Schema
}

// NewValidator компилирует встроенные схемы
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err := compiler.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
	}

	v := &Validator{schemas: make(map[models.PropertyType]*jsonschema.Schema, len(models.PropertyTypes))}
	for _, t := range models.PropertyTypes {
		sch, err := compiler.Compile(schemaBaseURL + string(t) + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", t, err)
		}
		v.schemas[t] = sch
	}
	return v, nil
}

// createRequest тело запроса на создание объявления любой категории
type createRequest struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Purpose       string      `json:"purpose"`
	Category      string      `json:"category"`
	City          string      `json:"city"`
	Location      string      `json:"location"`
	Marla         json.Number `json:"marla"`
	TotalPrice    *float64    `json:"total_price"`
	FromPrice     *float64    `json:"from_price"`
	ToPrice       *float64    `json:"to_price"`
	ContactName   string      `json:"contact_name"`
	ContactNumber string      `json:"contact_number"`
	IsNotified    *bool       `json:"is_notified"`

	House      string       `json:"house"`
	Street     string       `json:"street"`
	Bedrooms   *json.Number `json:"bedrooms"`
	Bathrooms  *json.Number `json:"bathrooms"`
	SeriesFrom string       `json:"series_from"`
	SeriesTo   string       `json:"series_to"`

	// целые поля после проверки диапазона
	marla     int
	bedrooms  *int
	bathrooms *int
}

// decode проверяет тело по схеме категории и разбирает его
func (v *Validator) decode(t models.PropertyType, body []byte) (*createRequest, error) {
	sch, ok := v.schemas[t]
	if !ok {
		return nil, models.ErrInvalidCategory
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, models.NewValidationError("invalid JSON body")
	}

	if err := sch.Validate(doc); err != nil {
		return nil, models.NewValidationError(firstError(err))
	}

	var req createRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, models.NewValidationError("invalid JSON body")
	}
	if err := req.parseIntegers(); err != nil {
		return nil, err
	}
	return &req, nil
}

// parseIntegers переводит целые поля в int.
// Допускаются значения с нулевой дробной частью, например 5.00.
func (r *createRequest) parseIntegers() error {
	marla, err := toInt("marla", r.Marla)
	if err != nil {
		return err
	}
	r.marla = marla

	if r.bedrooms, err = toOptionalInt("bedrooms", r.Bedrooms); err != nil {
		return err
	}
	if r.bathrooms, err = toOptionalInt("bathrooms", r.Bathrooms); err != nil {
		return err
	}
	return nil
}

func toInt(field string, n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, models.NewValidationError(field + ": a valid integer is required")
	}
	return int(f), nil
}

func toOptionalInt(field string, n *json.Number) (*int, error) {
	if n == nil {
		return nil, nil
	}
	v, err := toInt(field, *n)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// firstError выбирает одну ошибку валидации детерминированно:
// на каждом уровне берется причина с наименьшим путем в документе.
func firstError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return "invalid request body"
	}

	for len(ve.Causes) > 0 {
		next := ve.Causes[0]
		for _, c := range ve.Causes[1:] {
			if c.InstanceLocation < next.InstanceLocation ||
				(c.InstanceLocation == next.InstanceLocation && c.KeywordLocation < next.KeywordLocation) {
				next = c
			}
		}
		ve = next
	}

	if names, ok := strings.CutPrefix(ve.Message, "missing properties: "); ok {
		first := strings.Trim(strings.SplitN(names, ",", 2)[0], "' ")
		return first + ": this field is required"
	}

	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if field == "" {
		return ve.Message
	}
	return field + ": " + ve.Message
}

// toListing строит запись объявления и расширение нужной категории
func (r *createRequest) toListing(owner uuid.UUID, t models.PropertyType) models.Listing {
	isNotified := true
	if r.IsNotified != nil {
		isNotified = *r.IsNotified
	}

	p := models.Property{
		UserID:        owner,
		Title:         r.Title,
		Description:   r.Description,
		Purpose:       models.Purpose(r.Purpose),
		PropertyType:  t,
		Category:      r.Category,
		City:          r.City,
		Location:      r.Location,
		Marla:         r.marla,
		TotalPrice:    r.TotalPrice,
		FromPrice:     r.FromPrice,
		ToPrice:       r.ToPrice,
		ContactName:   r.ContactName,
		ContactNumber: r.ContactNumber,
		IsNotified:    isNotified,
	}

	var ext models.Extension
	switch t {
	case models.PropertyTypeHouse:
		ext = models.HouseExtension{
			House:     r.House,
			Street:    r.Street,
			Bedrooms:  derefInt(r.bedrooms),
			Bathrooms: derefInt(r.bathrooms),
		}
	case models.PropertyTypePlot:
		ext = models.PlotExtension{SeriesFrom: r.SeriesFrom, SeriesTo: r.SeriesTo}
	case models.PropertyTypeCommercial:
		ext = models.CommercialExtension{
			SeriesFrom: r.SeriesFrom,
			SeriesTo:   r.SeriesTo,
			Bedrooms:   r.bedrooms,
			Bathrooms:  r.bathrooms,
		}
	}
	return models.Listing{Property: p, Extension: ext}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
