package models

import "encoding/json"

// ListingView представляет объявление, готовое к отдаче клиенту
type ListingView struct {
	Property
	Extension    Extension
	IsWishlisted bool
}

// MarshalJSON разворачивает поля расширения на верхний уровень
func (v ListingView) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":             v.ID,
		"user_id":        v.UserID,
		"title":          v.Title,
		"description":    v.Description,
		"purpose":        v.Purpose,
		"property_type":  v.PropertyType,
		"category":       v.Category,
		"city":           v.City,
		"location":       v.Location,
		"marla":          v.Marla,
		"total_price":    v.TotalPrice,
		"from_price":     v.FromPrice,
		"to_price":       v.ToPrice,
		"contact_name":   v.ContactName,
		"contact_number": v.ContactNumber,
		"is_notified":    v.IsNotified,
		"created_at":     v.CreatedAt,
		"is_wishlisted":  v.IsWishlisted,
	}

	if v.Extension != nil {
		for k, val := range v.Extension.fields() {
			out[k] = val
		}
	}

	return json.Marshal(out)
}
