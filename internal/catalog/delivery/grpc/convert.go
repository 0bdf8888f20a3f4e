package grpc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tair/plant-catalog/internal/catalog/domain"
	"github.com/tair/plant-catalog/internal/catalog/usecase/query"
)

var errBadCriteria = errors.New("invalid criteria")

// criteriaFromStruct reads name, benefit, description, location and
// max_cost (or cost) from the request struct. Unknown keys are ignored.
func criteriaFromStruct(s *structpb.Struct) (domain.Criteria, error) {
	var c domain.Criteria
	fields := s.GetFields()

	for key, dst := range map[string]**string{
		"name":        &c.Name,
		"benefit":     &c.Benefit,
		"description": &c.Description,
		"location":    &c.Location,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
			continue
		}
		str, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return c, fmt.Errorf("%w: %s must be a string", errBadCriteria, key)
		}
		text := str.StringValue
		*dst = &text
	}

	for _, key := range []string{"max_cost", "cost"} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
			continue
		}
		num, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || math.IsNaN(num.NumberValue) || math.IsInf(num.NumberValue, 0) {
			return c, fmt.Errorf("%w: %s must be a number", errBadCriteria, key)
		}
		cost := num.NumberValue
		c.MaxCost = &cost
		break
	}

	return c, nil
}

func itemToMap(item domain.Item) map[string]interface{} {
	return map[string]interface{}{
		"id":              item.ID,
		"name":            item.Name,
		"scientific_name": item.ScientificName,
		"image_url":       item.ImageURL,
		"description":     item.Description,
		"how_to_grow":     item.HowToGrow,
		"health_benefit":  item.HealthBenefit,
		"found_in_nature": item.FoundInNature,
		"citation":        item.Citation,
		"cost":            item.Cost,
		"created_at":      formatTime(item.CreatedAt),
		"updated_at":      formatTime(item.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func itemToStruct(item domain.Item) (*structpb.Struct, error) {
	return structpb.NewStruct(itemToMap(item))
}

func itemViewToStruct(view *query.ItemView) (*structpb.Struct, error) {
	m := itemToMap(view.Item)
	if view.IsFavorite != nil {
		m["is_favorite"] = *view.IsFavorite
	}
	return structpb.NewStruct(m)
}

func itemsToList(items []domain.Item) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(items))
	for _, item := range items {
		s, err := itemToStruct(item)
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}

func trendingToList(entries []domain.TrendingEntry) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(entries))
	for _, e := range entries {
		s, err := structpb.NewStruct(map[string]interface{}{
			"item":           itemToMap(e.Item),
			"favorite_count": e.FavoriteCount,
		})
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}

// ItemFromStruct decodes an item produced by the server; clients use it
func ItemFromStruct(s *structpb.Struct) domain.Item {
	f := s.GetFields()
	str := func(key string) string { return f[key].GetStringValue() }
	return domain.Item{
		ID:             uint(f["id"].GetNumberValue()),
		Name:           str("name"),
		ScientificName: str("scientific_name"),
		ImageURL:       str("image_url"),
		Description:    str("description"),
		HowToGrow:      str("how_to_grow"),
		HealthBenefit:  str("health_benefit"),
		FoundInNature:  str("found_in_nature"),
		Citation:       str("citation"),
		Cost:           f["cost"].GetNumberValue(),
	}
}
