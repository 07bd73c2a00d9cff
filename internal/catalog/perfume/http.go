// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/perfumery/internal/platform/middleware"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/pkg/pagination"
)

// Handler implements the catalog and comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /perfumes routes.
//
// # Endpoints
//   - GET    /                              : Public, filtered and paginated.
//   - GET    /{id}                          : Public detail with comment authors.
//   - POST   /, PUT /{id}, DELETE /{id}     : Admin only.
//   - POST   /{id}/comments                 : Any member.
//   - PUT    /{id}/comments/{commentID}     : Comment author only.
//   - DELETE /{id}/comments/{commentID}     : Comment author only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Admin only
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
	})

	// Members; ownership is checked against the stored comment
	router.Group(func(members chi.Router) {
		members.Use(middleware.RequireAuth)
		members.Post("/{id}/comments", handler.addComment)
		members.Put("/{id}/comments/{commentID}", handler.updateComment)
		members.Delete("/{id}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// FilterFromRequest reads the listing filter from the query string.
func FilterFromRequest(request *http.Request) Filter {
	query := request.URL.Query()
	return Filter{
		Search:         query.Get("search"),
		BrandID:        query.Get("brand"),
		TargetAudience: TargetAudience(query.Get("targetAudience")),
		Concentration:  Concentration(query.Get("concentration")),
		Sort:           Sort(query.Get("sort")),
	}
}

/*
GET /api/perfumes?search=&brand=&targetAudience=&concentration=&sort=&page=&limit=

Response:
  - 200: []Perfume with count and pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	perfumes, total, err := handler.service.List(request.Context(), FilterFromRequest(request), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, perfumes, len(perfumes), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	perfume, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Perfume created", perfume)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	perfume, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, perfume)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Perfume deleted successfully")
}

/*
POST /api/perfumes/{id}/comments

Request: {"rating": 1-5, "content": "..."}

Response:
  - 201: The perfume detail including the new comment
  - 400: DUPLICATE_COMMENT when the caller already reviewed this perfume
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.AddComment(request.Context(), requestutil.Param(request, "id"), identity, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Comment added successfully", detail)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch CommentPatch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.UpdateComment(request.Context(),
		requestutil.Param(request, "id"), requestutil.Param(request, "commentID"), identity, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKWithMessage(writer, "Comment updated successfully", detail)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.DeleteComment(request.Context(),
		requestutil.Param(request, "id"), requestutil.Param(request, "commentID"), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKWithMessage(writer, "Comment deleted successfully", detail)
}

/*
MemberComments serves GET /api/members/{id}/comments.

It is mounted on the member router behind [middleware.RequireSelf].
*/
func (handler *Handler) MemberComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.MemberComments(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, comments, len(comments))
}
