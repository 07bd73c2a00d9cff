// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/perfumery/internal/admin"
	"github.com/taibuivan/perfumery/internal/auth"
	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/constants"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/pkg/convert"
	"github.com/taibuivan/perfumery/pkg/pagination"
	"github.com/taibuivan/perfumery/pkg/pointer"
)

// homeFeatured is how many recent perfumes the home page shows.
const homeFeatured = 8

// Services groups the domain services the pages read from.
type Services struct {
	Auth     *auth.Service
	Members  *member.Service
	Brands   *brand.Service
	Perfumes *perfume.Service
	Admin    *admin.Service
}

// Handler serves the HTML pages.
type Handler struct {
	services Services
	cookie   auth.Cookie
	pages    map[string]*template.Template
	now      func() time.Time
}

// NewHandler parses the embedded templates and returns a page handler.
func NewHandler(services Services, cookie auth.Cookie) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{services: services, cookie: cookie, pages: pages, now: time.Now}, nil
}

// Routes returns the page routes, mounted at the site root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.UseErrorPage(handler.fail))

	router.Get("/", handler.home)
	router.Get("/login", handler.loginForm)
	router.Post("/login", handler.login)
	router.Get("/register", handler.registerForm)
	router.Post("/register", handler.register)
	router.Get("/logout", handler.logout)
	router.Post("/logout", handler.logout)
	router.Get("/perfumes", handler.perfumes)
	router.Get("/perfumes/{id}", handler.perfume)
	router.Post("/perfumes/{id}/comments", handler.addComment)
	router.Post("/perfumes/{id}/comments/{commentID}", handler.updateComment)
	router.Post("/perfumes/{id}/comments/{commentID}/delete", handler.deleteComment)
	router.Get("/brands", handler.brands)
	router.Get("/members", handler.members)

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/profile", handler.profile)
		router.Post("/profile", handler.updateProfile)
		router.Get("/profile/password", handler.passwordForm)
		router.Post("/profile/password", handler.changePassword)
	})

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAdmin)
		router.Get("/admin", handler.dashboard)
		router.Get("/admin/perfumes", handler.adminPerfumes)
		router.Post("/admin/perfumes", handler.createPerfume)
		router.Get("/admin/perfumes/{id}/edit", handler.editPerfumeForm)
		router.Post("/admin/perfumes/{id}", handler.editPerfume)
		router.Post("/admin/perfumes/{id}/delete", handler.deletePerfume)
		router.Post("/admin/brands", handler.createBrand)
		router.Post("/admin/brands/{id}/delete", handler.deleteBrand)
		router.Get("/admin/members", handler.adminMembers)
	})

	return router
}

// pageLink returns path with query, pointing at another page of a listing.
func pageLink(path string, query url.Values, number int) string {
	next := url.Values{}
	for key, values := range query {
		next[key] = values
	}
	next.Set("page", strconv.Itoa(number))
	return path + "?" + next.Encode()
}

// clientError returns err as an AppError when the page should be shown again
// with the message, and nil when it belongs on the error page.
func clientError(err error) *apperr.AppError {
	appError := apperr.As(err)
	if appError == nil || appError.HTTPStatus >= http.StatusInternalServerError {
		return nil
	}
	return appError
}

// # Public Pages

func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	featured, _, err := handler.services.Perfumes.List(request.Context(),
		perfume.Filter{Sort: perfume.SortRecent}, pagination.Params{Page: 1, Limit: homeFeatured})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "home", view{Title: "Perfume Store", Data: featured})
}

type catalogPage struct {
	Perfumes []*perfume.Perfume
	Brands   []*brand.Brand
	Filter   perfume.Filter
	Meta     pagination.Meta

	Concentrations []perfume.Concentration
	Audiences      []perfume.TargetAudience
	Query          url.Values
}

// PageURL returns the current listing URL pointing at another page.
func (page catalogPage) PageURL(number int) string {
	return pageLink("/perfumes", page.Query, number)
}

func (handler *Handler) perfumes(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := perfume.FilterFromRequest(request)

	perfumes, total, err := handler.services.Perfumes.List(request.Context(), filter, params)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	brands, err := handler.services.Brands.List(request.Context(), brand.Filter{Sort: brand.SortName})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "perfumes", view{
		Title: "All Perfumes",
		Data: catalogPage{
			Perfumes:       perfumes,
			Brands:         brands,
			Filter:         filter,
			Meta:           pagination.NewMeta(params.Page, params.Limit, total),
			Concentrations: perfume.Concentrations,
			Audiences:      perfume.Audiences,
			Query:          request.URL.Query(),
		},
	})
}

type detailPage struct {
	*perfume.Detail
	Own *perfume.Comment
}

// RatingChoices lists the ratings a review form offers, best first.
func (detailPage) RatingChoices() []int {
	choices := make([]int, 0, perfume.MaxRating-perfume.MinRating+1)
	for rating := perfume.MaxRating; rating >= perfume.MinRating; rating-- {
		choices = append(choices, rating)
	}
	return choices
}

func (handler *Handler) perfume(writer http.ResponseWriter, request *http.Request) {
	handler.showPerfume(writer, request, http.StatusOK, "")
}

func (handler *Handler) showPerfume(writer http.ResponseWriter, request *http.Request, status int, message string) {
	detail, err := handler.services.Perfumes.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	page := detailPage{Detail: detail}
	if identity := requestutil.Identity(request); identity != nil {
		page.Own = detail.Perfume.Comments.ByAuthor(identity.MemberID)
	}

	handler.render(writer, request, status, "perfume", view{Title: detail.Name, Error: message, Data: page})
}

// # Comments

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	perfumeID := requestutil.Param(request, "id")
	identity := requestutil.Identity(request)
	if identity == nil {
		http.Redirect(writer, request, loginFor("/perfumes/"+perfumeID), http.StatusSeeOther)
		return
	}

	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}
	input := perfume.CommentInput{Rating: convert.ToInt(request.PostForm.Get("rating")), Content: request.PostForm.Get("content")}

	if _, err := handler.services.Perfumes.AddComment(request.Context(), perfumeID, identity, input); err != nil {
		handler.commentFailed(writer, request, err)
		return
	}
	http.Redirect(writer, request, "/perfumes/"+perfumeID, http.StatusSeeOther)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	perfumeID := requestutil.Param(request, "id")
	identity := requestutil.Identity(request)
	if identity == nil {
		http.Redirect(writer, request, loginFor("/perfumes/"+perfumeID), http.StatusSeeOther)
		return
	}

	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}
	patch := perfume.CommentPatch{
		Rating:  pointer.To(convert.ToInt(request.PostForm.Get("rating"))),
		Content: pointer.To(request.PostForm.Get("content")),
	}

	_, err := handler.services.Perfumes.UpdateComment(request.Context(), perfumeID, requestutil.Param(request, "commentID"), identity, patch)
	if err != nil {
		handler.commentFailed(writer, request, err)
		return
	}
	http.Redirect(writer, request, "/perfumes/"+perfumeID, http.StatusSeeOther)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	perfumeID := requestutil.Param(request, "id")
	identity := requestutil.Identity(request)
	if identity == nil {
		http.Redirect(writer, request, loginFor("/perfumes/"+perfumeID), http.StatusSeeOther)
		return
	}

	_, err := handler.services.Perfumes.DeleteComment(request.Context(), perfumeID, requestutil.Param(request, "commentID"), identity)
	if err != nil {
		handler.commentFailed(writer, request, err)
		return
	}
	http.Redirect(writer, request, "/perfumes/"+perfumeID, http.StatusSeeOther)
}

// commentFailed re-renders the product page with the error when it is a
// client mistake, otherwise falls back to the error page.
func (handler *Handler) commentFailed(writer http.ResponseWriter, request *http.Request, err error) {
	appError := clientError(err)
	if appError == nil || appError.Code == apperr.CodeNotFound {
		handler.fail(writer, request, err)
		return
	}
	handler.showPerfume(writer, request, appError.HTTPStatus, appError.Message)
}

// # Session Pages

type loginPage struct {
	Email string
	Next  string
}

func loginFor(next string) string {
	return constants.LoginPath + "?next=" + url.QueryEscape(next)
}

func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "login", view{
		Title: "Login",
		Data:  loginPage{Next: safeNext(request.URL.Query().Get("next"))},
	})
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	email := request.PostForm.Get("email")
	next := safeNext(request.PostForm.Get("next"))

	session, err := handler.services.Auth.Login(request.Context(), email, request.PostForm.Get("password"))
	if err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		handler.render(writer, request, appError.HTTPStatus, "login", view{
			Title: "Login",
			Error: appError.Message,
			Data:  loginPage{Email: email, Next: next},
		})
		return
	}

	handler.cookie.Set(writer, session.Token, handler.now())
	http.Redirect(writer, request, next, http.StatusSeeOther)
}

func (handler *Handler) registerForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "register", view{Title: "Register", Data: member.Registration{}})
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	input := member.Registration{
		Email:    request.PostForm.Get("email"),
		Password: request.PostForm.Get("password"),
		Name:     request.PostForm.Get("name"),
		YOB:      convert.ToInt(request.PostForm.Get("yob")),
		Gender:   convert.ToBool(request.PostForm.Get("gender")),
	}

	session, err := handler.services.Auth.Register(request.Context(), input)
	if err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		input.Password = ""
		handler.render(writer, request, appError.HTTPStatus, "register", view{
			Title: "Register",
			Error: appError.Message,
			Data:  input,
		})
		return
	}

	handler.cookie.Set(writer, session.Token, handler.now())
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token, err := middleware.TokenFromRequest(request, handler.cookie.Name); err == nil {
		if err := handler.services.Auth.Logout(request.Context(), token); err != nil {
			handler.fail(writer, request, err)
			return
		}
	}

	handler.cookie.Clear(writer)
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
