package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// TotalPoints recomputes the ledger sum from scratch. Deliberately never
// cached: the displayed total must always equal the stored records.
func (s *Service) TotalPoints() int {
	total := 0
	for _, p := range s.board.Points {
		total += p.Change
	}
	return total
}

// ParseChange parses a signed point change. A leading "+" is accepted the way
// people type rewards ("+4").
func ParseChange(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, fmt.Errorf("point change is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid point change %q", s)
	}
	return n, nil
}
