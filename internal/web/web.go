// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package web serves the server-rendered storefront pages.

Pages share the cookie-based session with the JSON API: signing in here sets
the same token cookie that /api routes accept. Guarded pages redirect to the
login form instead of answering with a JSON error.
*/
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/perfumery/internal/platform/ctxutil"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile = "templates/layout.html"
	formsFile  = "templates/forms.html"
)

// # Template Functions

var funcs = template.FuncMap{
	"money": func(value float64) string { return fmt.Sprintf("$%.2f", value) },
	"stars": func(rating int) string {
		rating = max(0, min(rating, 5))
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
	"date": func(value time.Time) string { return value.Format("Jan 2, 2006") },
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
}

// parsePages builds one template set per page, each paired with the layout
// and the shared form partials.
func parsePages() (map[string]*template.Template, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile || file == formsFile {
			continue
		}

		page, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, formsFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", file, err)
		}
		pages[strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")] = page
	}
	return pages, nil
}

// # Rendering

// view is the data every page receives.
type view struct {
	Title    string
	Page     string
	Identity *sec.Identity
	Error    string
	Data     any
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, page string, current view) {
	tmpl, ok := handler.pages[page]
	if !ok {
		http.Error(writer, "page not found", http.StatusInternalServerError)
		return
	}

	current.Page = page
	current.Identity = ctxutil.GetIdentity(request.Context())

	var body strings.Builder
	if err := tmpl.Execute(&body, current); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "web_render_failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(body.String()))
}

// fail renders err as an HTML error page. Authentication failures redirect
// to the login form.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Classify(request, err)
	if appError.HTTPStatus == http.StatusUnauthorized {
		http.Redirect(writer, request, middleware.LoginRedirect(request), http.StatusSeeOther)
		return
	}

	handler.render(writer, request, appError.HTTPStatus, "error", view{
		Title: http.StatusText(appError.HTTPStatus),
		Error: appError.Message,
	})
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
