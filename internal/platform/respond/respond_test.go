// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestList_Envelope checks success responses carry data and count.
*/
func TestList_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.List(recorder, []string{"Dior", "Chanel"}, 2)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
	assert.NotContains(t, body, "message")
}

/*
TestError_AppError maps domain errors to their status and message.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/perfumes/1/comments", nil)

	respond.Error(recorder, request, fmt.Errorf("wrapped: %w", apperr.ErrDuplicateComment))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, apperr.ErrDuplicateComment.Message, body["message"])
	assert.Equal(t, apperr.CodeDuplicateComment, body["code"])
}

/*
TestError_Unknown hides unexpected errors behind a generic 500.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/brands", nil)

	respond.Error(recorder, request, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["message"], "10.0.0.1")
}
