// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/pkg/pagination"
)

// # Directories

type brandsPage struct {
	Brands []*brand.Brand
	Search string
}

func (handler *Handler) brands(writer http.ResponseWriter, request *http.Request) {
	search := strings.TrimSpace(request.URL.Query().Get("search"))

	brands, err := handler.services.Brands.List(request.Context(), brand.Filter{Search: search, Sort: brand.SortName})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "brands", view{
		Title: "All Brands",
		Data:  brandsPage{Brands: brands, Search: search},
	})
}

type membersPage struct {
	Members []*member.Member
	Filter  member.Filter
	Meta    pagination.Meta

	path  string
	query url.Values
}

// PageURL returns the current listing URL pointing at another page.
func (page membersPage) PageURL(number int) string {
	return pageLink(page.path, page.query, number)
}

// listMembers loads one page of members for the public and admin directories.
func (handler *Handler) listMembers(request *http.Request, filter member.Filter) (membersPage, error) {
	params := pagination.FromRequest(request)

	members, total, err := handler.services.Members.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		return membersPage{}, err
	}

	return membersPage{
		Members: members,
		Filter:  filter,
		Meta:    pagination.NewMeta(params.Page, params.Limit, total),
		path:    request.URL.Path,
		query:   request.URL.Query(),
	}, nil
}

func (handler *Handler) members(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.listMembers(request, member.Filter{Search: request.URL.Query().Get("search")})
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	handler.render(writer, request, http.StatusOK, "members", view{Title: "Members", Data: page})
}
