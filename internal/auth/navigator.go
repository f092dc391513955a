package auth

import "context"

// DashboardPath is where an authenticated user is sent.
const DashboardPath = "/dashboard"

// NavigationMode distinguishes how the front end moves to the destination.
type NavigationMode int

const (
	// NavigateRoute is an in-app route change (sign-in).
	NavigateRoute NavigationMode = iota
	// NavigateReload is a full reload of the destination (sign-up auto-login).
	NavigateReload
)

func (m NavigationMode) String() string {
	if m == NavigateReload {
		return "reload"
	}
	return "route"
}

// Navigator moves the user to another view once a session exists.
type Navigator interface {
	Navigate(ctx context.Context, path string, mode NavigationMode)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string, mode NavigationMode)

// Navigate calls f.
func (f NavigatorFunc) Navigate(ctx context.Context, path string, mode NavigationMode) {
	f(ctx, path, mode)
}
