// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Users:      userstore.New(db),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Sign In", "/")

	templates.Render(w, r, "login", loginFormData{
		BaseVM:    base,
		ReturnURL: r.URL.Query().Get("return"),
	})
}

// HandleLoginPost handles POST /login with an email and password form.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormWithError(w, r, "Invalid form submission.", "", "")
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Email and password are required.", email, returnURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.Log.Error("login: lookup user", zap.String("email", email), zap.Error(err))
		h.renderFormWithError(w, r, "Something went wrong. Please try again.", email, returnURL)
		return
	}
	if u == nil || u.PasswordHash == "" {
		// Same message whether the account exists or not.
		h.renderFormWithError(w, r, "Invalid email or password.", email, returnURL)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		h.renderFormWithError(w, r, "Invalid email or password.", email, returnURL)
		return
	}

	if u.Status == models.UserStatusDisabled {
		h.renderFormWithError(w, r, "This account has been disabled.", email, returnURL)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("login: create session", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		h.renderFormWithError(w, r, "Something went wrong. Please try again.", email, returnURL)
		return
	}

	dest := urlutil.SafeReturn(returnURL, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	base := viewdata.NewBaseVM(r, "Sign In", "/")

	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    base,
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	})
}
