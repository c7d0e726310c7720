package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gamectrl/storefront/app/helpers"
	"github.com/gamectrl/storefront/app/models"
	"github.com/gamectrl/storefront/app/repositories"
	"github.com/gamectrl/storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
	validator    *validator.Validate
}

func NewAuthHandler(r *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		render:       r,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		validator:    validate,
	}
}

type RegisterForm struct {
	Username string `form:"username" validate:"required,min=3,max=100,alphanum"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

func (h *AuthHandler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	if userID, ok := r.Context().Value(helpers.ContextKeyUserID).(uint); ok && userID != 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Login",
		"Next":  r.URL.Query().Get("next"),
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Something went wrong processing your request.")), http.StatusSeeOther)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.userRepo.FindByUsername(r.Context(), username)
	if err != nil {
		log.Printf("LoginPostHandler: Error getting user %q: %v", helpers.SanitizeInput(username), err)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Server error.")), http.StatusSeeOther)
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		log.Printf("LoginPostHandler: Failed login attempt for %q", helpers.SanitizeInput(username))
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Invalid username or password.")), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPostHandler: Error setting user session: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/login?status=error&message=%s", url.QueryEscape("Failed to create a login session.")), http.StatusSeeOther)
		return
	}

	next := r.FormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *AuthHandler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Register",
	})
	_ = h.render.HTML(w, http.StatusOK, "auth/register", data)
}

func (h *AuthHandler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("RegisterPostHandler: Error parsing form: %v", err)
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("Something went wrong processing your request.")), http.StatusSeeOther)
		return
	}

	form := RegisterForm{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := h.validator.Struct(form); err != nil {
		log.Printf("RegisterPostHandler: Validation failed for %q: %v", helpers.SanitizeInput(form.Username), err)
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("Please check your username, email and password.")), http.StatusSeeOther)
		return
	}

	existing, err := h.userRepo.FindByUsername(r.Context(), form.Username)
	if err != nil {
		log.Printf("RegisterPostHandler: Error checking username %q: %v", helpers.SanitizeInput(form.Username), err)
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("Server error.")), http.StatusSeeOther)
		return
	}
	if existing != nil {
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("That username is taken.")), http.StatusSeeOther)
		return
	}

	hashed := helpers.HashPassword(form.Password)
	if hashed == "" {
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("Server error.")), http.StatusSeeOther)
		return
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hashed,
		Role:     models.RoleCustomer,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("RegisterPostHandler: Error creating user %q: %v", helpers.SanitizeInput(form.Username), err)
		http.Redirect(w, r, fmt.Sprintf("/register?status=error&message=%s", url.QueryEscape("Failed to create account.")), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("RegisterPostHandler: Error setting session for new user %d: %v", user.ID, err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutHandler: Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
