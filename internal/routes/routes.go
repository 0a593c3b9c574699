package routes

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/careercraft/careercraft/internal/auth"
	"github.com/careercraft/careercraft/internal/interfaces"
	"github.com/careercraft/careercraft/internal/models/dto"
	"github.com/careercraft/careercraft/internal/session"
	"github.com/careercraft/careercraft/internal/userservice"

	structValidator "github.com/go-playground/validator/v10"
)

type Route struct {
	Metrics     interfaces.Metrics
	UserService *userservice.UserService
	PrivateKey  *ecdsa.PrivateKey
	validator   *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService *userservice.UserService,
	privateKey *ecdsa.PrivateKey, validator *structValidator.Validate,
) *Route {

	return &Route{
		Metrics:     metrics,
		UserService: userService,
		PrivateKey:  privateKey,
		validator:   validator,
	}
}

// Signup handles account creation requests. A taken username renders the
// same generic failure as any other rejection so accounts cannot be
// enumerated through this endpoint.
func (r *Route) Signup(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		r.errorResponse(w, fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupRequestsTotal)
	}

	if req.Header.Get(ContentType) != ContentTypeJson {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), "Request Content-Type must be application/json")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	signupRequest := &dto.SignupRequestDTO{}
	err := json.NewDecoder(req.Body).Decode(signupRequest)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, "Invalid request body")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	if err := r.validator.Struct(signupRequest); err != nil {
		errors := err.(structValidator.ValidationErrors)
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid signup data: %s", errors), "Signup data validation failed")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	created, err := r.UserService.RegisterUser(req.Context(), signupRequest.Username, signupRequest.Password, signupRequest.Education)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to register user")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}
	if !created {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf(ErrSignupRejected), "Signup could not be completed")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupSuccessTotal)
		duration := time.Since(startTime).Seconds()
		r.Metrics.ObserveHistogram(SignupDurationSeconds, duration)
	}

	router := session.NewRouter()
	router.RegisterSucceeded()

	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(http.StatusCreated)

	response := &dto.SignupResponseDTO{
		Message: MsgUserCreated,
		Page:    string(router.CurrentPage()),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to encode response")
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		return
	}
}

// Login handles authentication requests and sets the session cookie.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		r.errorResponse(w, fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginRequestsTotal)
	}

	if req.Header.Get(ContentType) != ContentTypeJson {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), "Content-Type must be application/json")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	loginRequest := &dto.LoginRequestDTO{}
	err := json.NewDecoder(req.Body).Decode(loginRequest)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, err, "Invalid request body")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	if err := r.validator.Struct(loginRequest); err != nil {
		errors := err.(structValidator.ValidationErrors)
		w.WriteHeader(http.StatusBadRequest)
		r.errorResponse(w, fmt.Errorf("invalid login data: %s", errors), "Login data validation failed")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	authenticated, err := r.UserService.AuthenticateUser(req.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to authenticate user")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
			duration := time.Since(startTime).Seconds()
			r.Metrics.ObserveHistogram(LoginDurationSeconds, duration)
		}
		return
	}
	if !authenticated {
		w.Header().Set(ContentType, ContentTypeJson)
		w.WriteHeader(http.StatusUnauthorized)
		r.errorResponse(w, fmt.Errorf(ErrInvalidCredentials), "Invalid username or password")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
			duration := time.Since(startTime).Seconds()
			r.Metrics.ObserveHistogram(LoginDurationSeconds, duration)
		}
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginSuccessTotal)
		duration := time.Since(startTime).Seconds()
		r.Metrics.ObserveHistogram(LoginDurationSeconds, duration)
	}

	sessionToken, err := auth.CreateToken(loginRequest.Username, r.PrivateKey)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to generate session token")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
	})

	router := session.NewRouter()
	router.LoginSucceeded(loginRequest.Username)

	w.Header().Set(ContentType, ContentTypeJson)

	w.WriteHeader(http.StatusOK)
	response := &dto.LoginResponseDTO{
		Message: MsgLoginSuccessful,
		Page:    string(router.CurrentPage()),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to encode response")
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		return
	}
}

// Logout clears the session cookie and returns the client to the login
// page. It succeeds whether or not a cookie was present.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		r.errorResponse(w, fmt.Errorf("method %s not allowed", req.Method), "Method not allowed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	router := session.NewRouter()
	router.Logout()

	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(http.StatusOK)
	response := &dto.LogoutResponseDTO{
		Message: MsgLogoutSuccessful,
		Page:    string(router.CurrentPage()),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		r.errorResponse(w, err, "Failed to encode response")
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, err error, message string) {
	jsonResponse := map[string]string{
		"error":   err.Error(),
		"message": message,
	}
	_ = json.NewEncoder(w).Encode(jsonResponse)
}
