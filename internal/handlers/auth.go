// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"portfolio/internal/config"
	"portfolio/internal/middleware"
	"portfolio/internal/render"
	"portfolio/internal/session"
	"portfolio/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Abdullah.design"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	cfg       *config.Config
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(cfg *config.Config, renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		cfg:       cfg,
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// loginPage renders the login form with the admin email prefilled.
func (a *Auth) loginPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Вход",
		Error: errMsg,
		Data:  map[string]any{"Email": a.cfg.AdminEmail},
	})
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already fully logged in: go straight to the project list.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
		return
	}

	a.loginPage(w, r, "")
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	// Find the user by email.
	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.loginPage(w, r, "Произошла непредвиденная ошибка")
		return
	}

	// Validate credentials. The message is identical for a missing user
	// and a wrong password.
	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.loginPage(w, r, "Неверный email или пароль")
		return
	}

	// Without 2FA the session is complete right away.
	twoFADone := !a.cfg.TwoFA

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		TwoFADone: twoFADone,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if twoFADone {
		http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
		return
	}

	// 2FA is on: route based on enrollment status.
	if user.Needs2FASetup() {
		http.Redirect(w, r, "/studio/2fa/setup", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/studio/2fa/verify", http.StatusSeeOther)
	}
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/studio/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Save the secret to the database.
	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qr, err := qrDataURI(key.URL())
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Настройка 2FA",
		Data: map[string]any{
			"QRCode": qr,
			"Secret": key.Secret(),
		},
	})
}

// TwoFAVerifyPage renders the 2FA code entry form for an enrolled user.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/studio/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Подтверждение",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// The same handler serves both first-time setup confirmation and the
// verification step on later logins.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/studio/login", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/studio/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		if !user.TOTPEnabled {
			// First-time setup: re-render the setup page with the same secret.
			otpURL := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
				totpIssuer, user.Email, *user.TOTPSecret, totpIssuer)
			qr, _ := qrDataURI(otpURL)

			a.renderer.Page(w, r, "2fa_setup", &render.PageData{
				Title: "Настройка 2FA",
				Error: "Неверный код. Попробуйте ещё раз",
				Data: map[string]any{
					"QRCode": qr,
					"Secret": *user.TOTPSecret,
				},
			})
			return
		}

		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Подтверждение",
			Error: "Неверный код. Попробуйте ещё раз",
		})
		return
	}

	// First successful validation enables TOTP permanently.
	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/studio/projects", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/studio/login", http.StatusSeeOther)
}

// qrDataURI encodes a payload as a QR code PNG data URI for inline <img>
// use. The template.URL type keeps html/template from rejecting the
// data: scheme.
func qrDataURI(payload string) (template.URL, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
