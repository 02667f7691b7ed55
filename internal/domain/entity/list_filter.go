package entity

// ListFilter is a domain-level filter for paginated list queries.
// Used by repository layer to avoid coupling with delivery DTOs.
type ListFilter struct {
	Search string // case-insensitive substring
	Limit  int
	Offset int
}

// DashboardStats are the counters shown on the admin dashboard
type DashboardStats struct {
	Doctors      int64
	Patients     int64
	Appointments int64
	Completed    int64
	Pending      int64
}
