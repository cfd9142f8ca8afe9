package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/hara/pkg/utils/errutil"
)

func TestHandleHTTP(t *testing.T) {
	t.Run("writes JSON error with explicit message", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := goerr.New("boom", goerr.V("key", "value"))

		errutil.HandleHTTP(context.Background(), w, err, "Missing 'file' in form-data", http.StatusBadRequest)

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal("Missing 'file' in form-data")
	})

	t.Run("falls back to error text", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, errors.New("raw failure"), "", http.StatusInternalServerError)

		gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal("raw failure")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, nil, "", http.StatusInternalServerError)
		gt.Value(t, w.Body.Len()).Equal(0)
	})
}

func TestHandle(t *testing.T) {
	err := goerr.New("failed")
	gt.Value(t, errutil.Handle(context.Background(), err, "msg")).Equal(err)
	gt.Value(t, errutil.Handle(context.Background(), nil, "msg")).Nil()
}
