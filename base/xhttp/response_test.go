package xhttp

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ProjectsTask/TraitSigner/base/errcode"
	"github.com/ProjectsTask/TraitSigner/base/kit/validator"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestOkJson(t *testing.T) {
	w := serve(func(c *gin.Context) { OkJson(c, gin.H{"msg": "ok"}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"msg":"ok"}`, w.Body.String())
}

func TestErrorCodeErr(t *testing.T) {
	w := serve(func(c *gin.Context) { Error(c, errors.Wrap(errcode.ErrTraitNotFound, "lookup")) })
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":`+strconv.Itoa(errcode.ErrTraitNotFound.Code)+`,"msg":"Trait not found"}`, w.Body.String())
}

func TestErrorFieldErrors(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, validator.FieldErrors{{Field: "signedMessage", Msg: "signedMessage is a required field"}})
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"field":"signedMessage","msg":"signedMessage is a required field"}]}`, w.Body.String())
}

func TestErrorUnexpectedHidesDetail(t *testing.T) {
	w := serve(func(c *gin.Context) { Error(c, errors.New("dial tcp 10.0.0.1:8545: refused")) })
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), errcode.ErrUnexpected.Msg)
}
