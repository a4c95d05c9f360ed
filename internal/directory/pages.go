package directory

// Tile is one department card on the dashboard.
type Tile struct {
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	BgColor   string `json:"bgColor"`
	IconColor string `json:"iconColor"`
	URL       string `json:"url"`
}

// Tiles lists the dashboard departments. Only HR has a page in this service.
func Tiles() []Tile {
	return []Tile{
		{Title: "HR", Icon: "users", BgColor: "bg-blue-50", IconColor: "text-blue-500", URL: "/hr/queries/create"},
		{Title: "Accounts", Icon: "wallet", BgColor: "bg-green-50", IconColor: "text-green-500", URL: "/accounts"},
		{Title: "IT Team", Icon: "laptop", BgColor: "bg-purple-50", IconColor: "text-purple-500", URL: "/it-team"},
		{Title: "Projects", Icon: "folder-kanban", BgColor: "bg-orange-50", IconColor: "text-orange-500", URL: "/projects"},
		{Title: "User", Icon: "user-circle", BgColor: "bg-indigo-50", IconColor: "text-indigo-500", URL: "/user"},
	}
}

// Stats summarises the resignation list.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// Summarise counts employees by status. Status labels are compared as
// written, so "Pending" and "pending" are separate buckets.
func Summarise(employees []Employee) Stats {
	stats := Stats{Total: len(employees), ByStatus: map[string]int{}}
	for _, emp := range employees {
		stats.ByStatus[emp.Status]++
	}
	return stats
}

// OffboardingQuestion is the toggle shown on the offboarding page.
const OffboardingQuestion = "Is offboarding interview completed?"

// Profile is the employee card on the offboarding page.
type Profile struct {
	Employee
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	JoinDate       string `json:"joinDate"`
	RemainingDays  int    `json:"remainingDays"`
	CurrentProject string `json:"currentProject"`
	Experience     string `json:"experience"`
	Department     string `json:"department"`
}

// Offboarding is the data for the offboarding page.
type Offboarding struct {
	AppName            string  `json:"appName"`
	Employee           Profile `json:"employee"`
	Question           string  `json:"question"`
	InterviewCompleted bool    `json:"interviewCompleted"`
	CommentsLabel      string  `json:"commentsLabel"`
	CommentsHint       string  `json:"commentsHint"`
}

// OffboardingPage returns the sample offboarding page.
func OffboardingPage() Offboarding {
	return Offboarding{
		AppName: AppName,
		Employee: Profile{
			Employee: Employee{
				ID:          "I23001",
				Name:        "John Doe",
				Email:       "john.doe@company.com",
				Designation: "Senior Software Engineer",
				Status:      "active",
			},
			Role:           "Senior Software Engineer",
			Phone:          "+1 (555) 123-4567",
			JoinDate:       "Jan 2023",
			RemainingDays:  15,
			CurrentProject: "Project Beta",
			Experience:     "5+ years",
			Department:     "Engineering",
		},
		Question:           OffboardingQuestion,
		InterviewCompleted: true,
		CommentsLabel:      "Employee's Comments:",
		CommentsHint:       "Please share your thoughts and feedback...",
	}
}
