package session

// Page identifies which view a client should render.
type Page string

const (
	PageLogin  Page = "login"
	PageSignup Page = "signup"
	PageHome   Page = "home"
)

// Router is the per-session page state machine shared by every tool. It
// replaces the per-page copies of the login/signup/home flow with one
// explicit struct: no hidden globals, state passed in and returned.
type Router struct {
	LoggedIn bool
	Page     Page
	Username string
}

// NewRouter starts a session at the login page.
func NewRouter() *Router {
	return &Router{Page: PageLogin}
}

// LoginSucceeded records a successful authentication and moves to home.
func (r *Router) LoginSucceeded(username string) {
	r.LoggedIn = true
	r.Username = username
	r.Page = PageHome
}

// SignupRequested moves from login to the signup view.
func (r *Router) SignupRequested() {
	if !r.LoggedIn {
		r.Page = PageSignup
	}
}

// RegisterSucceeded returns to login so the new user can authenticate.
func (r *Router) RegisterSucceeded() {
	r.Page = PageLogin
}

// BackRequested abandons signup and returns to login.
func (r *Router) BackRequested() {
	if !r.LoggedIn {
		r.Page = PageLogin
	}
}

// Logout clears the session and returns to login.
func (r *Router) Logout() {
	r.LoggedIn = false
	r.Username = ""
	r.Page = PageLogin
}

// CurrentPage normalizes and returns the page to render. A logged-in
// session always lands on home; any unrecognized page value for an
// anonymous session falls back to login.
func (r *Router) CurrentPage() Page {
	if r.LoggedIn {
		r.Page = PageHome
		return r.Page
	}
	switch r.Page {
	case PageLogin, PageSignup:
		return r.Page
	default:
		r.Page = PageLogin
		return r.Page
	}
}
