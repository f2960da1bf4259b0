package handler

import (
	"html/template"
	"net/http"

	"github.com/danielotieno/ledgerbook/internal/logging"
)

// Pages serves the navigable route surface. Rendering is deliberately
// minimal: the real presentation layer is a separate client, and these pages
// exist so the access policy has routes to gate.
type Pages struct{}

func NewPages() *Pages {
	return &Pages{}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}} · Ledgerbook</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Body}}</p>
</body>
</html>`))

func renderPage(w http.ResponseWriter, r *http.Request, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Title, Body string }{title, body}
	if err := pageTmpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", "error", err, "page", title)
	}
}

func (p *Pages) Landing(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Ledgerbook", "Track balances and transactions.")
}

func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Login", "Sign in to your account.")
}

func (p *Pages) Signup(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Sign Up", "Create an account.")
}

func (p *Pages) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Forgot Password", "Request a password reset link.")
}

func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Dashboard", "Your account overview.")
}

func (p *Pages) Admin(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "User Management", "Manage user roles and balances.")
}

func (p *Pages) Transactions(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Transaction History", "The most recent entries for this account.")
}

func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	renderPage(w, r, "Not Found", "This page does not exist.")
}
