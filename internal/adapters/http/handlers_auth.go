package web

import (
	"errors"
	"log/slog"
	"net/http"

	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/application/orchestrators"
	"flotenn/internal/domain/account"
)

const dashboardPath = "/admin/dashboard"

// handleLogin handles GET (form) and POST (sign in) for /admin/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			redirectTo(w, r, dashboardPath)
			return
		}
		renderTemplate(w, r, "auth_login.html", map[string]any{
			"Reset": r.URL.Query().Get("reset") == "1",
		})
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		email := formText(r, "email")
		acct, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
			Email:    email,
			Password: r.FormValue("password"),
		}, orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
			Now:          timeNow,
		})
		if err != nil {
			msg := err.Error()
			if !errors.Is(err, orchestrators.ErrInvalidCredentials) && !errors.Is(err, orchestrators.ErrAccountLocked) {
				slog.Error("auth_event", "event", "login_error", "error", err)
				msg = "Sign-in is unavailable right now. Please try again."
			}
			renderTemplateStatus(w, r, http.StatusUnauthorized, "auth_login.html", map[string]any{
				"Email": email,
				"Error": msg,
			})
			return
		}

		token, err := sessions.Create(acct)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)
		redirectTo(w, r, dashboardPath)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /admin/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	redirectTo(w, r, middleware.LoginPath)
}

func passwordResetDeps() orchestrators.PasswordResetDeps {
	return orchestrators.PasswordResetDeps{
		AccountStore:   stores.AccountStore,
		Email:          sendEmailDeps(),
		Activity:       activityDeps(),
		BaseURL:        siteBaseURL,
		GenerateID:     generateID,
		Now:            timeNow,
		RevokeSessions: sessions.DeleteForAccount,
	}
}

// handleForgotPassword handles GET (form) and POST (send link) for
// /admin/forgot-password. The response never reveals whether an account
// exists.
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "auth_forgot.html", nil)
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		if err := orchestrators.ExecuteRequestPasswordReset(r.Context(), formText(r, "email"), passwordResetDeps()); err != nil {
			slog.Error("auth_event", "event", "password_reset_request_failed", "error", err)
		}
		renderTemplate(w, r, "auth_forgot.html", map[string]any{"Sent": true})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleResetPassword handles GET (form) and POST (set password) for
// /admin/reset-password?token=...
func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "auth_reset.html", map[string]any{
			"Token": r.URL.Query().Get("token"),
		})
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		token := r.FormValue("token")
		err := orchestrators.ExecuteCompletePasswordReset(r.Context(), orchestrators.CompleteResetInput{
			Token:    token,
			Password: r.FormValue("password"),
			Confirm:  r.FormValue("confirm"),
		}, passwordResetDeps())
		if err != nil {
			msg := err.Error()
			if !isResetInputError(err) {
				slog.Error("auth_event", "event", "password_reset_failed", "error", err)
				msg = "Could not reset your password. Please try again."
			}
			renderTemplateStatus(w, r, http.StatusUnprocessableEntity, "auth_reset.html", map[string]any{
				"Token": token,
				"Error": msg,
			})
			return
		}
		redirectTo(w, r, middleware.LoginPath+"?reset=1")
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func isResetInputError(err error) bool {
	for _, target := range []error{
		orchestrators.ErrPasswordMismatch,
		account.ErrTokenInvalid,
		account.ErrTokenExpired,
		account.ErrEmptyPassword,
		account.ErrPasswordTooShort,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
