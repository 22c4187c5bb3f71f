// ABOUTME: Request and response types for the PerfTrack API
// ABOUTME: JSON field names match the backend serializers exactly

package client

// Role values returned in UserProfile.Role.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Goal status values.
const (
	GoalStatusDraft     = "draft"
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusCancelled = "cancelled"
)

// Review status values.
const (
	ReviewStatusPending   = "pending"
	ReviewStatusCompleted = "completed"
)

// UserProfile represents the authenticated user as returned by the backend
type UserProfile struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// FullName returns the display name for headers and greetings
func (u *UserProfile) FullName() string {
	if u.FirstName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful response from POST /auth/login
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}

// Goal represents a performance goal
type Goal struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	TargetDate      string `json:"target_date,omitempty"`
	Progress        int    `json:"progress"`
	Status          string `json:"status"`
	ManagerApproved bool   `json:"manager_approved"`
	// EmployeeName is server-computed and only present for manager/admin views
	EmployeeName string `json:"employee_name,omitempty"`
}

// GoalDraft is the client-supplied body for goal create and update
type GoalDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	Progress    int    `json:"progress"`
	Status      string `json:"status,omitempty"`
}

// Review represents a performance review, read-only in this client
type Review struct {
	ID            int     `json:"id"`
	ReviewerName  string  `json:"reviewer_name"`
	RevieweeName  string  `json:"reviewee_name"`
	ReviewType    string  `json:"review_type"`
	ReviewPeriod  string  `json:"review_period"`
	OverallRating float64 `json:"overall_rating,omitempty"`
	Status        string  `json:"status"`
}

// Employee represents a roster entry
type Employee struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	ManagerID  int    `json:"manager_id,omitempty"`
	HireDate   string `json:"hire_date,omitempty"`
}

// FullName returns the display name for roster rows
func (e Employee) FullName() string {
	if e.FirstName == "" {
		return e.Email
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeDraft is the client-supplied body for employee create and update.
// Password is only accepted on create; UpdateEmployee strips it.
type EmployeeDraft struct {
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	ManagerID  int    `json:"manager_id,omitempty"`
	HireDate   string `json:"hire_date,omitempty"`
}

// AverageRatings holds server-computed rating averages by dimension
type AverageRatings struct {
	Overall       float64 `json:"overall"`
	Technical     float64 `json:"technical"`
	Communication float64 `json:"communication"`
	Leadership    float64 `json:"leadership"`
	Teamwork      float64 `json:"teamwork"`
}

// DepartmentCount is one row of the department headcount breakdown
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// DashboardAnalytics is the GET /analytics/dashboard response
type DashboardAnalytics struct {
	TotalEmployees       int               `json:"total_employees"`
	TotalGoals           int               `json:"total_goals"`
	TotalReviews         int               `json:"total_reviews"`
	GoalCompletionRate   float64           `json:"goal_completion_rate"`
	ReviewCompletionRate float64           `json:"review_completion_rate"`
	AverageRatings       AverageRatings    `json:"average_ratings"`
	DepartmentBreakdown  []DepartmentCount `json:"department_breakdown,omitempty"`
}

// TrendPoint is one month of the performance trend series
type TrendPoint struct {
	Month         string  `json:"month"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// PerformanceTrends is the GET /analytics/performance-trends response
type PerformanceTrends struct {
	Trends []TrendPoint `json:"trends"`
}
