package gate

// Route is one navigable view of the dashboard.
type Route struct {
	Path   string
	Title  string
	Access Access
}

// LoginPath is the public entry point unauthenticated navigation lands on.
const LoginPath = "/login"

// RootPath is the default authenticated view (cost dashboard) and the
// target for unmatched paths and insufficient-role redirects.
const RootPath = "/"

// routes is the full navigation surface, mirroring the dashboard's pages.
var routes = []Route{
	{Path: LoginPath, Title: "Sign in", Access: Public},
	{Path: RootPath, Title: "Cost Overview", Access: Authenticated},
	{Path: "/forecast", Title: "Forecast", Access: Authenticated},
	{Path: "/optimizer", Title: "Compute Optimizer", Access: Authenticated},
	{Path: "/anomalies", Title: "Anomaly Detection", Access: Authenticated},
	{Path: "/optimization-hub", Title: "Optimization Hub", Access: Authenticated},
	{Path: "/news", Title: "Cloud News", Access: Authenticated},
	{Path: "/ai", Title: "AI Recommendations", Access: Authenticated},
	{Path: "/admin/accounts", Title: "Accounts", Access: AdminOnly},
	{Path: "/admin/users", Title: "Users", Access: AdminOnly},
	{Path: "/admin/activity", Title: "User Activity", Access: AdminOnly},
}

// Routes returns the navigation surface in display order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup resolves a path to its route. Unmatched paths fall back to the
// root route, which in turn redirects to login when unauthenticated.
func Lookup(path string) Route {
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return Lookup(RootPath)
}
