package helper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
)

func TestGetStatusCode(t *testing.T) {
	h := NewHTTPHelper()

	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{models.ErrorNotFound{Resource: "version", ID: 1}, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", models.ErrorNotFound{Resource: "post"}), http.StatusNotFound},
		{models.ErrorMismatch{VersionID: 1, PostID: 2}, http.StatusConflict},
		{models.ErrorUnauthorized{Message: "no"}, http.StatusUnauthorized},
		{models.ErrorForbidden{Message: "no"}, http.StatusForbidden},
		{models.ErrorConflict{Message: "dup"}, http.StatusConflict},
		{models.ErrorValidation{Message: "bad"}, http.StatusBadRequest},
		{errors.New("persist versions: disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, h.GetStatusCode(tt.err), "%v", tt.err)
	}
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

func serve(t *testing.T, method, path, target string, body []byte, handler gin.HandlerFunc) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, path, handler)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSendAppErrorHidesInternalErrors(t *testing.T) {
	h := NewHTTPHelper()

	w, env := serve(t, http.MethodGet, "/x", "/x", nil, func(c *gin.Context) {
		h.SendAppError(c, errors.New("dial tcp 10.0.0.1:5432: refused"))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internalError", env.CodeType)
	assert.JSONEq(t, `"internal server error"`, string(env.CodeMessage))

	w, env = serve(t, http.MethodGet, "/x", "/x", nil, func(c *gin.Context) {
		h.SendAppError(c, models.ErrorMismatch{VersionID: 4, PostID: 2})
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, http.StatusConflict, env.Code)
	assert.Equal(t, "conflict", env.CodeType)
}

func TestBindAndValidate(t *testing.T) {
	h := NewHTTPHelper()
	handler := func(c *gin.Context) {
		var req models.CreatePostRequest
		if !h.BindAndValidate(c, &req) {
			return
		}
		h.SendSuccess(c, "ok", req)
	}

	w, env := serve(t, http.MethodPost, "/posts", "/posts", []byte(`{"status":"deleted"}`), handler)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validationError", env.CodeType)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.CodeMessage, &fields))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "status")

	w, _ = serve(t, http.MethodPost, "/posts", "/posts", []byte(`{not json`), handler)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = serve(t, http.MethodPost, "/posts", "/posts", []byte(`{"title":"Hello","tags":["go"]}`), handler)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.CodeType)
}

func TestParseID(t *testing.T) {
	h := NewHTTPHelper()
	handler := func(c *gin.Context) {
		id, ok := h.ParseID(c, "version_id")
		if !ok {
			return
		}
		h.SendSuccess(c, "ok", id)
	}

	w, env := serve(t, http.MethodGet, "/v/:version_id", "/v/12", nil, handler)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "12", string(env.Data))

	for _, bad := range []string{"/v/0", "/v/abc", "/v/-3"} {
		w, env = serve(t, http.MethodGet, "/v/:version_id", bad, nil, handler)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.JSONEq(t, `"Invalid version id"`, string(env.CodeMessage))
	}
}

func TestGeneratePaging(t *testing.T) {
	h := NewHTTPHelper()

	_, env := serve(t, http.MethodGet, "/posts", "/posts?page=2", nil, func(c *gin.Context) {
		h.SendSuccess(c, "ok", h.GeneratePaging(c, 10, 2, 35))
	})

	var paging struct {
		TotalPages int               `json:"total_pages"`
		Links      map[string]string `json:"links"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &paging))
	assert.Equal(t, 4, paging.TotalPages)
	assert.Equal(t, "http://example.com/posts?page=3&limit=10", paging.Links["next"])
	assert.Equal(t, "http://example.com/posts?page=1&limit=10", paging.Links["previous"])
}
