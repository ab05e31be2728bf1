// Package forms holds the state of the sign-in, sign-up and verification
// forms. None of them talk to a backend: submitting always succeeds and
// yields the route to navigate to next.
package forms

import (
	"net/url"
	"strings"
)

const (
	RouteDashboard = "/dashboard"
	RouteVerify    = "/verify"
	RouteSignup    = "/signup"
	RouteSignin    = "/signin"
)

// LoginForm is the sign-in form.
type LoginForm struct {
	Username string
	Password string
}

// LoginFromValues reads a posted sign-in form.
func LoginFromValues(v url.Values) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(v.Get("username")),
		Password: v.Get("password"),
	}
}

// Submit returns the route shown after signing in.
// TODO: check credentials once an auth service exists.
func (f LoginForm) Submit() string {
	return RouteDashboard
}

// SignupForm is the account creation form.
type SignupForm struct {
	Username string
	Email    string
	Password string
}

// SignupFromValues reads a posted sign-up form.
func SignupFromValues(v url.Values) SignupForm {
	return SignupForm{
		Username: strings.TrimSpace(v.Get("username")),
		Email:    strings.TrimSpace(v.Get("email")),
		Password: v.Get("password"),
	}
}

// Submit returns the route shown after signing up.
func (f SignupForm) Submit() string {
	return RouteVerify
}
