package services

import (
	"fmt"
	"strings"

	"github.com/Lilsadiq8345/Todo/models"
)

// StatusFilter je filter liste zadataka u prikazu.
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterPending    StatusFilter = "pending"
	FilterInProgress StatusFilter = "in_progress"
	FilterCompleted  StatusFilter = "completed"
)

// ParseStatusFilter validira vrednost filtera; prazna vrednost znači "all".
func ParseStatusFilter(v string) (StatusFilter, error) {
	switch StatusFilter(v) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPending, FilterInProgress, FilterCompleted:
		return StatusFilter(v), nil
	}
	return "", fmt.Errorf("unknown status filter: %q", v)
}

// matchesSearch proverava da li bar jedno polje sadrži termin, bez razlike velikih i malih slova.
// Prazan termin prolazi uvek.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// matchesStatus primenjuje filter: "completed" gleda is_completed zastavicu,
// "pending" i "in_progress" gledaju status nezavršenih zadataka.
func matchesStatus(filter StatusFilter, t models.Task) bool {
	switch filter {
	case FilterAll, "":
		return true
	case FilterCompleted:
		return t.IsCompleted
	case FilterInProgress:
		return !t.IsCompleted && t.Status == models.StatusInProgress
	case FilterPending:
		return !t.IsCompleted && t.Status != models.StatusInProgress
	}
	return false
}
