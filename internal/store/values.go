package store

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/specialistvlad/lootgraph/internal/loot"
)

func parseCount(field, raw string) (*loot.Count, error) {
	c, err := loot.ParseCount(raw)
	if err != nil {
		return nil, &InvalidValueError{Field: field, Value: raw, Err: err}
	}
	return c, nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &InvalidValueError{Field: field, Value: raw, Err: err}
	}
	return d, nil
}

// parseProb returns nil for an empty string.
func parseProb(raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := parseDecimal("prob", raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseForceProb returns nil for an empty string.
func parseForceProb(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &InvalidValueError{Field: "force_prob", Value: raw, Err: err}
	}
	return &v, nil
}
