package http

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tair/plant-catalog/internal/catalog/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FilterRequest is the criteria body accepted by the filter endpoint.
// Keys match case-insensitively, so the capitalised form (Name, Cost) works too.
type FilterRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Benefit     *string  `json:"benefit" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Location    *string  `json:"location" validate:"omitempty,max=200"`
	MaxCost     *float64 `json:"max_cost"`
	// Cost is the older name for MaxCost
	Cost *float64 `json:"cost"`
}

// Criteria converts the request into domain criteria
func (r FilterRequest) Criteria() domain.Criteria {
	maxCost := r.MaxCost
	if maxCost == nil {
		maxCost = r.Cost
	}
	return domain.Criteria{
		Name:        r.Name,
		Benefit:     r.Benefit,
		Description: r.Description,
		Location:    r.Location,
		MaxCost:     maxCost,
	}
}

// ToggleRequest is the body form of the toggle endpoint
type ToggleRequest struct {
	PlantID    uint `json:"plant_id"`
	PlantIDAlt uint `json:"plantId"`
	ItemID     uint `json:"item_id"`
}

// Target returns whichever item id field was sent
func (r ToggleRequest) Target() uint {
	switch {
	case r.ItemID != 0:
		return r.ItemID
	case r.PlantID != 0:
		return r.PlantID
	default:
		return r.PlantIDAlt
	}
}

// TrendingRequest bounds the leaderboard size; non-positive means default
type TrendingRequest struct {
	Limit int `validate:"lte=100"`
}

var errInvalidBody = errors.New("invalid request body")

// parseAndValidateRequest decodes a JSON body and validates it
func parseAndValidateRequest(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errInvalidBody
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

// filterFromQuery reads criteria from URL parameters
func filterFromQuery(values url.Values) (FilterRequest, error) {
	var req FilterRequest
	for key, dst := range map[string]**string{
		"name":        &req.Name,
		"benefit":     &req.Benefit,
		"description": &req.Description,
		"location":    &req.Location,
	} {
		if values.Has(key) {
			v := values.Get(key)
			*dst = &v
		}
	}

	for _, key := range []string{"max_cost", "cost"} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
			return req, errors.New("max_cost must be a number")
		}
		req.MaxCost = &cost
		break
	}

	if err := validate.Struct(req); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.New("validation failed")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return errors.New("validation failed: " + strings.Join(fields, ", "))
}
