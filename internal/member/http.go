// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/perfumery/internal/platform/middleware"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/pkg/pagination"
)

// Handler implements the member profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /members routes.
//
// # Endpoints
//   - GET /                : Public member list.
//   - GET /{id}            : Own profile.
//   - PUT /{id}            : Update own profile.
//   - PUT /{id}/password   : Change own password.
//
// Profile routes use [middleware.RequireSelf]: admins cannot edit other members.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(self chi.Router) {
		self.Use(middleware.RequireSelf("id"))
		self.Get("/{id}", handler.get)
		self.Put("/{id}", handler.update)
		self.Put("/{id}/password", handler.changePassword)
	})

	return router
}

// CollectorRoutes returns the admin-only /collectors listing.
func (handler *Handler) CollectorRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAdmin)
	router.Get("/", handler.list)
	return router
}

/*
GET /api/members?search=&role=admin&page=&limit=

Response:
  - 200: []Member with count and pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()
	filter := Filter{Search: query.Get("search"), AdminsOnly: query.Get("role") == "admin"}

	members, total, err := handler.service.List(request.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, len(members), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	member, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

/*
PUT /api/members/{id}

Request:
  - Body: ProfileUpdate (any subset of email, name, yob, gender)

Response:
  - 200: Member
  - 400: Validation failure or email taken
  - 403: Caller is not the profile owner
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input ProfileUpdate
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.UpdateProfile(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	var input PasswordChange
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), requestutil.Param(request, "id"), input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Password changed successfully")
}
