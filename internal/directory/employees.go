// Package directory holds the sample resignation data shown by the HR pages.
package directory

import (
	"strings"
	"unicode/utf8"
)

// AppName is the product name shown in page headers.
const AppName = "Smart Exit"

// Employee is one resignation entry.
type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Designation  string `json:"designation"`
	Project      string `json:"project"`
	NoticePeriod int    `json:"noticePeriod"`
	Status       string `json:"status"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Initials returns up to two upper-case initials.
func (e Employee) Initials() string {
	return Initials(e.Name)
}

// AvatarColor picks a stable background class for the initials badge.
func (e Employee) AvatarColor() string {
	return AvatarColors[utf8.RuneCountInString(e.Name)%len(AvatarColors)]
}

// AvatarColors are the badge backgrounds, picked by name length.
var AvatarColors = []string{
	"bg-red-400",
	"bg-blue-400",
	"bg-green-400",
	"bg-yellow-400",
	"bg-purple-400",
}

// Initials takes the first letter of each space-separated word, keeps two
// and upper-cases them.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
		count++
		if count == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}

// Sample returns the built-in resignation list. Emails follow the
// first.last@company.com convention.
func Sample() []Employee {
	employees := []Employee{
		{ID: "I23001", Name: "John Doe", Designation: "Software Engineer", Project: "Project Alpha", NoticePeriod: 3, Status: "Pending"},
		{ID: "I23002", Name: "Jane Smith", Designation: "Product Manager", Project: "Project Beta", NoticePeriod: 45, Status: "yet to be started"},
		{ID: "I23003", Name: "Mike Johnson", Designation: "UX Designer", Project: "Project Gamma", NoticePeriod: 14, Status: "yet to be started"},
		{ID: "I23004", Name: "Emily Brown", Designation: "Data Analyst", Project: "Project Delta", NoticePeriod: 30, Status: "yet to be started"},
		{ID: "I23005", Name: "Chris Wilson", Designation: "DevOps Engineer", Project: "Project Alpha", NoticePeriod: 6, Status: "pending"},
		{ID: "I23006", Name: "Sarah Davis", Designation: "QA Tester", Project: "Project Beta", NoticePeriod: 21, Status: "pending"},
		{ID: "I23007", Name: "Tom Anderson", Designation: "Frontend Developer", Project: "Project Gamma", NoticePeriod: 30, Status: "pending"},
		{ID: "I23008", Name: "Lisa Taylor", Designation: "Backend Developer", Project: "Project Delta", NoticePeriod: 45, Status: "pending"},
		{ID: "I23009", Name: "Alex Martinez", Designation: "Scrum Master", Project: "Project Alpha", NoticePeriod: 14, Status: "pending"},
		{ID: "I23010", Name: "Rachel Lee", Designation: "Business Analyst", Project: "Project Beta", NoticePeriod: 30, Status: "pending"},
	}
	for i := range employees {
		employees[i].Email = strings.ToLower(strings.ReplaceAll(employees[i].Name, " ", ".")) + "@company.com"
	}
	return employees
}

// Find returns the employee with id.
func Find(employees []Employee, id string) (Employee, bool) {
	for _, emp := range employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return Employee{}, false
}
