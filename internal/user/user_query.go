package user

import (
	"strings"

	"gorm.io/gorm"
)

// predicate is one applied filter: a SQL fragment plus its bind values. The
// listing query collects predicates first and applies them in one pass so the
// count query and the page query always see the same filter set.
type predicate struct {
	expr string
	args []any
}

// sortableColumns whitelists every column the listing may be ordered by.
// Anything outside the map falls back to updated_at.
var sortableColumns = map[string]string{
	"first_name":   "u.first_name",
	"last_name":    "u.last_name",
	"email":        "u.email",
	"designation":  "u.designation",
	"active":       "u.active",
	"created_at":   "u.created_at",
	"updated_at":   "u.updated_at",
	"company_name": "company_name",
}

func buildPredicates(f Filters) []predicate {
	var preds []predicate

	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + search + "%"
		preds = append(preds, predicate{
			expr: "(u.first_name ILIKE ? OR u.last_name ILIKE ? OR u.email ILIKE ?)",
			args: []any{like, like, like},
		})
	}

	if designation := strings.TrimSpace(f.Designation); designation != "" {
		preds = append(preds, predicate{expr: "u.designation = ?", args: []any{designation}})
	}

	if f.CompanyID != "" {
		preds = append(preds, predicate{expr: "u.company_id = ?", args: []any{f.CompanyID}})
	}

	// The global filter, when set to anything but "all", overrides the plain
	// active filter entirely. An unknown value filters nothing.
	if f.GlobalFilter != "" && f.GlobalFilter != FilterAll {
		switch f.GlobalFilter {
		case FilterUnassigned:
			preds = append(preds, predicate{expr: "u.company_id IS NULL"})
		case FilterInactive:
			preds = append(preds, predicate{expr: "u.active = false"})
		case FilterActive:
			preds = append(preds, predicate{expr: "u.active = true"})
		}
	} else if f.Active != nil {
		preds = append(preds, predicate{expr: "u.active = ?", args: []any{*f.Active}})
	}

	return preds
}

func applyPredicates(q *gorm.DB, preds []predicate) *gorm.DB {
	for _, p := range preds {
		q = q.Where(p.expr, p.args...)
	}
	return q
}

func sortColumn(key string) string {
	if col, ok := sortableColumns[key]; ok {
		return col
	}
	return "u.updated_at"
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
