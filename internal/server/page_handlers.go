package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-smartexit/internal/directory"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
)

type employeeRow struct {
	directory.Employee
	Initials    string `json:"initials"`
	AvatarColor string `json:"avatarColor"`
}

type sortLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type pageLink struct {
	Number  int    `json:"number"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

type listQuery struct {
	Search  string `json:"search"`
	Project string `json:"project"`
	Sort    string `json:"sort"`
	Dir     string `json:"dir"`
}

var sortColumns = []struct {
	column directory.SortColumn
	label  string
}{
	{directory.SortByName, "Name"},
	{directory.SortByDesignation, "Designation"},
	{directory.SortByProject, "Project"},
	{directory.SortByNoticePeriod, "Notice Period"},
	{directory.SortByStatus, "Status"},
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	out, err := s.pages.RenderTemplate(name, data)
	if err != nil {
		s.logger.Error("page render failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("template", name),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

// parseListQuery reads search, project, sort, dir and page. Unknown sort
// columns fall back to name.
func parseListQuery(values url.Values) directory.Query {
	column, err := directory.ParseSortColumn(values.Get("sort"))
	if err != nil {
		column = directory.SortByName
	}
	page, _ := strconv.Atoi(values.Get("page"))
	return directory.Query{
		Search:     values.Get("search"),
		Project:    values.Get("project"),
		Sort:       column,
		Descending: strings.EqualFold(values.Get("dir"), "desc"),
		Page:       page,
	}
}

func listHref(q directory.Query, column directory.SortColumn, descending bool, page int) string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Project != "" && q.Project != directory.AllProjects {
		values.Set("project", q.Project)
	}
	values.Set("sort", string(column))
	if descending {
		values.Set("dir", "desc")
	} else {
		values.Set("dir", "asc")
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	return "/?" + values.Encode()
}

func (s *Server) handleResignations(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r.URL.Query())
	result := q.Run(s.employees)

	rows := make([]employeeRow, len(result.Employees))
	for i, emp := range result.Employees {
		rows[i] = employeeRow{Employee: emp, Initials: emp.Initials(), AvatarColor: emp.AvatarColor()}
	}

	columns := make([]sortLink, len(sortColumns))
	for i, col := range sortColumns {
		active := col.column == q.Sort
		// clicking the active column flips the direction
		columns[i] = sortLink{
			Label:  col.label,
			Href:   listHref(q, col.column, active && !q.Descending, 1),
			Active: active,
		}
	}

	pages := make([]pageLink, result.TotalPages)
	for i := range pages {
		number := i + 1
		pages[i] = pageLink{
			Number:  number,
			Href:    listHref(q, q.Sort, q.Descending, number),
			Current: number == result.Page,
		}
	}

	project := q.Project
	if project == "" {
		project = directory.AllProjects
	}
	dir := "asc"
	if q.Descending {
		dir = "desc"
	}
	s.renderPage(w, r, http.StatusOK, "list", map[string]any{
		"page":     result,
		"rows":     rows,
		"columns":  columns,
		"pages":    pages,
		"projects": directory.Projects(s.employees),
		"query":    listQuery{Search: q.Search, Project: project, Sort: string(q.Sort), Dir: dir},
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "dashboard", map[string]any{
		"tiles": directory.Tiles(),
		"stats": directory.Summarise(s.employees),
	})
}

func (s *Server) handleBuilder(w http.ResponseWriter, r *http.Request) {
	fields := s.session.Fields()
	if fields == nil {
		fields = []model.Field{}
	}
	s.renderPage(w, r, http.StatusOK, "builder", map[string]any{
		"types":  s.types.Descriptors(),
		"fields": fields,
		"issues": s.session.Validate(),
	})
}

func (s *Server) handleOffboarding(w http.ResponseWriter, r *http.Request) {
	page := directory.OffboardingPage()
	if id := r.URL.Query().Get("employee"); id != "" {
		emp, ok := directory.Find(s.employees, id)
		if !ok {
			s.handleNotFound(w, r)
			return
		}
		page.Employee.Employee = emp
		page.Employee.Role = emp.Designation
		page.Employee.CurrentProject = emp.Project
		page.Employee.RemainingDays = emp.NoticePeriod
	}

	slots := scheduler.Slots()
	slotLabels := make([]string, len(slots))
	for i, slot := range slots {
		slotLabels[i] = slot.String()
	}
	durations := scheduler.Durations()
	minutes := make([]int, len(durations))
	for i, d := range durations {
		minutes[i] = int(d.Minutes())
	}

	s.renderPage(w, r, http.StatusOK, "offboarding", map[string]any{
		"page":              page,
		"initials":          page.Employee.Initials(),
		"slots":             slotLabels,
		"durations":         minutes,
		"defaultDuration":   int(scheduler.DefaultDuration.Minutes()),
		"schedulingEnabled": s.scheduler != nil,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	s.renderPage(w, r, http.StatusNotFound, "notfound", map[string]any{
		"path": r.URL.Path,
	})
}
