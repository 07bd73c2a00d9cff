// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"net/http"

	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/pkg/convert"
	"github.com/taibuivan/perfumery/pkg/pointer"
)

// # Profile
//
// Every route here sits behind RequireAuth, so the identity is always set.

type profilePage struct {
	Member   *member.Member
	Comments []perfume.MemberComment
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	handler.showProfile(writer, request, http.StatusOK, "", nil)
}

// showProfile renders the profile page. A non-nil draft replaces the stored
// fields in the form so a rejected edit is not lost.
func (handler *Handler) showProfile(writer http.ResponseWriter, request *http.Request, status int, message string, draft *member.Member) {
	identity := requestutil.Identity(request)

	found, err := handler.services.Members.Get(request.Context(), identity.MemberID)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	comments, err := handler.services.Perfumes.MemberComments(request.Context(), identity.MemberID)
	if err != nil {
		handler.fail(writer, request, err)
		return
	}

	if draft != nil {
		found = draft
	}

	handler.render(writer, request, status, "profile", view{
		Title: "My Profile",
		Error: message,
		Data:  profilePage{Member: found, Comments: comments},
	})
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	identity := requestutil.Identity(request)
	update := member.ProfileUpdate{
		Email:  pointer.To(request.PostForm.Get("email")),
		Name:   pointer.To(request.PostForm.Get("name")),
		YOB:    pointer.To(convert.ToInt(request.PostForm.Get("yob"))),
		Gender: pointer.To(convert.ToBool(request.PostForm.Get("gender"))),
	}

	if _, err := handler.services.Members.UpdateProfile(request.Context(), identity.MemberID, update); err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		handler.showProfile(writer, request, appError.HTTPStatus, appError.Message, &member.Member{
			ID:     identity.MemberID,
			Email:  *update.Email,
			Name:   *update.Name,
			YOB:    *update.YOB,
			Gender: *update.Gender,
		})
		return
	}

	http.Redirect(writer, request, "/profile", http.StatusSeeOther)
}

func (handler *Handler) passwordForm(writer http.ResponseWriter, request *http.Request) {
	handler.render(writer, request, http.StatusOK, "password", view{Title: "Change Password"})
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Malformed form"))
		return
	}

	change := member.PasswordChange{
		CurrentPassword: request.PostForm.Get("current_password"),
		NewPassword:     request.PostForm.Get("new_password"),
	}

	// A wrong current password answers 401; here it is a form error, not a lost session.
	if err := handler.services.Members.ChangePassword(request.Context(), requestutil.Identity(request).MemberID, change); err != nil {
		appError := clientError(err)
		if appError == nil {
			handler.fail(writer, request, err)
			return
		}
		status := appError.HTTPStatus
		if status == http.StatusUnauthorized {
			status = http.StatusBadRequest
		}
		handler.render(writer, request, status, "password", view{Title: "Change Password", Error: appError.Message})
		return
	}

	http.Redirect(writer, request, "/profile", http.StatusSeeOther)
}
