// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"
	"net/url"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/pkg/convert"
	"github.com/taibuivan/perfumery/pkg/pagination"
)

// # Administration
//
// Every route here sits behind RequireAdmin.

const adminPerfumesPath = "/admin/perfumes"

func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.services.Admin.Stats(request.Context())
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "admin", view{Title: "Admin Dashboard", Data: stats})
}

// perfumeForm carries the perfume editor state: the values being edited and
// the choices the selects offer.
type perfumeForm struct {
	ID    string
	Input perfume.Input

	Brands         []*brand.Brand
	Concentrations []perfume.Concentration
	Audiences      []perfume.TargetAudience
}

type adminPerfumesPage struct {
	Perfumes []*perfume.Perfume
	Meta     pagination.Meta
	Form     perfumeForm
	Brand    brand.Input

	query url.Values
}

// PageURL returns the management listing pointing at another page.
func (page adminPerfumesPage) PageURL(number int) string {
	return pageLink(adminPerfumesPath, page.query, number)
}

func (handler *Handler) newPerfumeForm(request *http.Request, id string, input perfume.Input) (perfumeForm, error) {
	brands, err := handler.services.Brands.List(request.Context(), brand.Filter{Sort: brand.SortName})
	if err != nil {
		return perfumeForm{}, err
	}
	return perfumeForm{
		ID:             id,
		Input:          input,
		Brands:         brands,
		Concentrations: perfume.Concentrations,
		Audiences:      perfume.Audiences,
	}, nil
}

func perfumeInputFromForm(form url.Values) perfume.Input {
	return perfume.Input{
		Name:           form.Get("name"),
		URI:            form.Get("uri"),
		Price:          convert.ToFloat64(form.Get("price")),
		Concentration:  perfume.Concentration(form.Get("concentration")),
		Description:    form.Get("description"),
		Ingredients:    form.Get("ingredients"),
		Volume:         convert.ToFloat64(form.Get("volume")),
		TargetAudience: perfume.TargetAudience(form.Get("target_audience")),
		BrandID:        form.Get("brand_id"),
	}
}

func (handler *Handler) adminPerfumes(writer http.ResponseWriter, request *http.Request) {
	handler.showAdminPerfumes(writer, request, http.StatusOK, "", perfume.Input{}, brand.Input{})
}

// showAdminPerfumes renders the management page, keeping any rejected drafts in their forms.
func (handler *Handler) showAdminPerfumes(writer http.ResponseWriter, request *http.Request, status int, message string, draft perfume.Input, brandDraft brand.Input) {
	params := pagination.FromRequest(request)

	perfumes, total, err := handler.services.Perfumes.List(request.Context(), perfume.Filter{Sort: perfume.SortRecent}, params)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	form, err := handler.newPerfumeForm(request, "", draft)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, status, "admin_perfumes", view{
		Title: "Manage Perfumes",
		Error: message,
		Data: adminPerfumesPage{
			Perfumes: perfumes,
			Meta:     pagination.NewMeta(params.Page, params.Limit, total),
			Form:     form,
			Brand:    brandDraft,
			query:    request.URL.Query(),
		},
	})
}

func (handler *Handler) createPerfume(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	input := perfumeInputFromForm(request.PostForm)
	if _, err := handler.services.Perfumes.Create(request.Context(), input); err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		handler.showAdminPerfumes(writer, request, appError.HTTPStatus, appError.Message, input, brand.Input{})
		return
	}

	http.Redirect(writer, request, adminPerfumesPath, http.StatusSeeOther)
}

func (handler *Handler) editPerfumeForm(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.services.Perfumes.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	handler.showPerfumeEditor(writer, request, http.StatusOK, "", detail.ID, perfume.InputOf(detail.Perfume))
}

func (handler *Handler) showPerfumeEditor(writer http.ResponseWriter, request *http.Request, status int, message, id string, input perfume.Input) {
	form, err := handler.newPerfumeForm(request, id, input)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}
	handler.render(writer, request, status, "admin_perfume", view{Title: "Edit " + input.Name, Error: message, Data: form})
}

func (handler *Handler) editPerfume(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	id := requestutil.Param(request, "id")
	input := perfumeInputFromForm(request.PostForm)

	if _, err := handler.services.Perfumes.Update(request.Context(), id, input.Patch()); err != nil {
		appError := clientError(err)
		if appError == nil || appError.Code == apperr.CodeNotFound {
			handler.fail(writer, request, err)
			return
		}
		handler.showPerfumeEditor(writer, request, appError.HTTPStatus, appError.Message, id, input)
		return
	}

	http.Redirect(writer, request, adminPerfumesPath, http.StatusSeeOther)
}

func (handler *Handler) deletePerfume(writer http.ResponseWriter, request *http.Request) {
	if err := handler.services.Perfumes.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		handler.fail(writer, request, err)
		return
	}
	http.Redirect(writer, request, adminPerfumesPath, http.StatusSeeOther)
}

func (handler *Handler) createBrand(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	input := brand.Input{Name: request.PostForm.Get("name")}
	if _, err := handler.services.Brands.Create(request.Context(), input); err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		handler.showAdminPerfumes(writer, request, appError.HTTPStatus, appError.Message, perfume.Input{}, input)
		return
	}

	http.Redirect(writer, request, adminPerfumesPath, http.StatusSeeOther)
}

func (handler *Handler) deleteBrand(writer http.ResponseWriter, request *http.Request) {
	if err := handler.services.Brands.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		appError := clientError(err)
		if appError == nil || appError.Code == apperr.CodeNotFound {
			handler.fail(writer, request, err)
			return
		}
		// A brand still carrying perfumes stays, and the page says why.
		handler.showAdminPerfumes(writer, request, appError.HTTPStatus, appError.Message, perfume.Input{}, brand.Input{})
		return
	}
	http.Redirect(writer, request, adminPerfumesPath, http.StatusSeeOther)
}

func (handler *Handler) adminMembers(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	page, err := handler.listMembers(request, member.Filter{
		Search:     query.Get("search"),
		AdminsOnly: query.Get("role") == "admin",
	})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "admin_members", view{Title: "Manage Members", Data: page})
}
