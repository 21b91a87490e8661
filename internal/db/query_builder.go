package db

import (
	"fmt"
	"strings"

	"github.com/rajivgeraev/deals-api/internal/models"
)

const propertyColumns = `p.id, p.user_id, p.title, p.description, p.purpose, p.property_type,
	p.category, p.city, p.location, p.marla, p.total_price, p.from_price, p.to_price,
	p.contact_name, p.contact_number, p.is_notified, p.created_at`

// extensionTables таблица расширения для каждой категории
var extensionTables = map[models.PropertyType]string{
	models.PropertyTypeHouse:      "property_houses",
	models.PropertyTypePlot:       "property_plots",
	models.PropertyTypeCommercial: "property_commercials",
}

var baseColumns = map[models.Field]string{
	models.FieldPropertyType: "p.property_type",
	models.FieldPurpose:      "p.purpose",
	models.FieldCategory:     "p.category",
	models.FieldCity:         "p.city",
	models.FieldLocation:     "p.location",
	models.FieldMarla:        "p.marla",
	models.FieldFromPrice:    "p.from_price",
	models.FieldToPrice:      "p.to_price",
}

var extensionColumns = map[models.Field]string{
	models.FieldHouse:      "e.house",
	models.FieldStreet:     "e.street",
	models.FieldBedrooms:   "e.bedrooms",
	models.FieldBathrooms:  "e.bathrooms",
	models.FieldSeriesFrom: "e.series_from",
	models.FieldSeriesTo:   "e.series_to",
}

type queryBuilder struct {
	joinClause strings.Builder
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

func (qb *queryBuilder) addCondition(condition string, column string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, column, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) addContains(column, value string) {
	qb.addCondition("%s ILIKE $%d", column, "%"+escapeLike(value)+"%")
}

// arg резервирует следующий номер параметра
func (qb *queryBuilder) arg(v interface{}) int {
	qb.args = append(qb.args, v)
	qb.argID++
	return qb.argID - 1
}

// build возвращает JOIN, WHERE и аргументы запроса
func (qb *queryBuilder) build() (string, string, []interface{}) {
	where := ""
	if len(qb.conditions) > 0 {
		where = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return qb.joinClause.String(), where, qb.args
}

// applyPredicates переводит набор предикатов фильтра в SQL.
// Таблица расширения присоединяется всегда, чтобы в выдачу попадали только согласованные записи.
func applyPredicates(set models.PredicateSet) (*queryBuilder, error) {
	table, ok := extensionTables[set.PropertyType]
	if !ok {
		return nil, models.ErrInvalidCategory
	}

	qb := newQueryBuilder()
	fmt.Fprintf(&qb.joinClause, " JOIN %s e ON e.property_id = p.id ", table)

	for _, pr := range set.Predicates {
		column, ok := baseColumns[pr.Field]
		if !ok {
			column, ok = extensionColumns[pr.Field]
		}
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", pr.Field)
		}

		switch pr.Op {
		case models.OpContains:
			s, ok := pr.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains predicate on %q needs a string", pr.Field)
			}
			qb.addContains(column, s)
		case models.OpEqual:
			qb.addCondition("%s = $%d", column, pr.Value)
		case models.OpGTE:
			qb.addCondition("%s >= $%d", column, pr.Value)
		case models.OpLTE:
			qb.addCondition("%s <= $%d", column, pr.Value)
		default:
			return nil, fmt.Errorf("unknown operator %q", pr.Op)
		}
	}

	return qb, nil
}

// applyPropertyQuery строит условия для ленты, инвентаря и избранного
func applyPropertyQuery(q models.PropertyQuery) *queryBuilder {
	qb := newQueryBuilder()

	if q.WishlistedBy != nil {
		n := qb.arg(*q.WishlistedBy)
		fmt.Fprintf(&qb.joinClause, " JOIN wishlists w ON w.property_id = p.id AND w.user_id = $%d ", n)
	}
	if q.OwnerID != nil {
		qb.addCondition("%s = $%d", "p.user_id", *q.OwnerID)
	}
	if q.ExcludeOwnerID != nil {
		qb.addCondition("%s <> $%d", "p.user_id", *q.ExcludeOwnerID)
	}
	if q.Purpose != "" {
		qb.addCondition("%s = $%d", "p.purpose", string(q.Purpose))
	}
	if q.PropertyType != "" {
		qb.addCondition("%s = $%d", "p.property_type", string(q.PropertyType))
	}
	if q.TitleContains != "" {
		qb.addContains("p.title", q.TitleContains)
	}

	return qb
}

// applyMatchQuery строит условия поиска встречных объявлений
func applyMatchQuery(q models.MatchQuery) *queryBuilder {
	qb := newQueryBuilder()
	qb.addCondition("%s = $%d", "p.property_type", string(q.PropertyType))
	qb.addCondition("%s = $%d", "p.purpose", string(q.Purpose))
	qb.addContains("p.city", q.City)
	qb.addContains("p.location", q.Location)
	qb.addCondition("%s <> $%d", "p.id", q.ExcludePropertyID)
	qb.addCondition("%s <> $%d", "p.user_id", q.ExcludeOwnerID)

	return qb
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
