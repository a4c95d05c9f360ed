package directory

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// AllProjects disables the project filter.
const AllProjects = "All"

// PageSize is the number of rows per page.
const PageSize = 10

// SortColumn names a sortable employee attribute.
type SortColumn string

const (
	SortByName         SortColumn = "name"
	SortByDesignation  SortColumn = "designation"
	SortByProject      SortColumn = "project"
	SortByNoticePeriod SortColumn = "noticePeriod"
	SortByStatus       SortColumn = "status"
)

var sortColumns = mapset.NewSet(SortByName, SortByDesignation, SortByProject, SortByNoticePeriod, SortByStatus)

// ParseSortColumn accepts the column names above.
func ParseSortColumn(raw string) (SortColumn, error) {
	col := SortColumn(strings.TrimSpace(raw))
	if col == "" {
		return SortByName, nil
	}
	if !sortColumns.Contains(col) {
		return "", fmt.Errorf("directory: unknown sort column %q", raw)
	}
	return col, nil
}

// Query filters, sorts and pages the list.
type Query struct {
	Search     string
	Project    string
	Sort       SortColumn
	Descending bool
	Page       int
}

// Page is one page of results. Total counts every match across pages.
type Page struct {
	Employees  []Employee `json:"employees"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// Projects lists AllProjects followed by each project in first-seen order.
func Projects(employees []Employee) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := []string{AllProjects}
	for _, emp := range employees {
		if seen.Add(emp.Project) {
			out = append(out, emp.Project)
		}
	}
	return out
}

// Run applies q to employees. Search matches name or designation without
// regard to case. Pages are 1-based and clamped to the available range.
func (q Query) Run(employees []Employee) Page {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	project := strings.TrimSpace(q.Project)

	matches := make([]Employee, 0, len(employees))
	for _, emp := range employees {
		if project != "" && project != AllProjects && emp.Project != project {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(emp.Name), term) &&
			!strings.Contains(strings.ToLower(emp.Designation), term) {
			continue
		}
		matches = append(matches, emp)
	}

	column := q.Sort
	if column == "" {
		column = SortByName
	}
	sort.SliceStable(matches, func(i, j int) bool {
		cmp := compare(matches[i], matches[j], column)
		if q.Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	totalPages := (len(matches) + PageSize - 1) / PageSize
	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	return Page{
		Employees:  matches[start:end],
		Total:      len(matches),
		Page:       page,
		TotalPages: totalPages,
	}
}

func compare(a, b Employee, column SortColumn) int {
	switch column {
	case SortByNoticePeriod:
		return a.NoticePeriod - b.NoticePeriod
	case SortByDesignation:
		return strings.Compare(a.Designation, b.Designation)
	case SortByProject:
		return strings.Compare(a.Project, b.Project)
	case SortByStatus:
		return strings.Compare(a.Status, b.Status)
	}
	return strings.Compare(a.Name, b.Name)
}
