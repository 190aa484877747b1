package loot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AllKeyword is the raw count that stands for "every entry".
const AllKeyword = "all"

// MaxCount is the upper bound stored for an "all" count.
const MaxCount = math.MaxInt32

// Count is a draw-count policy: a fixed number (Low == High) or an inclusive
// range. All marks the unbounded "all" policy, stored as [0, MaxCount].
type Count struct {
	Low  int
	High int
	All  bool
}

// ParseCount parses a raw count string.
//
//	""     -> nil
//	"all"  -> [0, MaxCount], All set
//	"N"    -> [N, N]
//	"N,M"  -> High N, Low M
//
// The two-token form reads the high bound first. Bounds are not reordered.
func ParseCount(raw string) (*Count, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if raw == AllKeyword {
		return &Count{Low: 0, High: MaxCount, All: true}, nil
	}

	tokens := strings.Split(raw, ",")
	if len(tokens) > 2 {
		return nil, fmt.Errorf("count %q: expected at most two comma separated values", raw)
	}
	first, err := parseBound(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("count %q: %w", raw, err)
	}
	if len(tokens) == 1 {
		return &Count{Low: first, High: first}, nil
	}
	second, err := parseBound(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("count %q: %w", raw, err)
	}
	return &Count{Low: second, High: first}, nil
}

func parseBound(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty bound")
	}
	v, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q", token)
	}
	return int(v), nil
}

// IsUnbounded reports whether c is the "all" policy.
func (c *Count) IsUnbounded() bool {
	return c != nil && c.All
}

// Fixed reports whether c always yields the same number.
func (c *Count) Fixed() bool {
	return c != nil && !c.All && c.Low == c.High
}

func (c *Count) String() string {
	switch {
	case c == nil:
		return ""
	case c.All:
		return AllKeyword
	case c.Low == c.High:
		return strconv.Itoa(c.Low)
	default:
		return fmt.Sprintf("%d,%d", c.High, c.Low)
	}
}
