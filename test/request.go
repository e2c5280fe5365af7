package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/sectionledger/backend/internal/config"
	"github.com/sectionledger/backend/internal/ledger"
	"github.com/sectionledger/backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request is a helper method to simplify making a HTTP request for tests.
//
// A nil body sends an empty request body.
func Request(t *testing.T, service *ledger.Service, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	byteBuffer := new(bytes.Buffer)

	switch b := body.(type) {
	case nil:
	case string:
		byteBuffer = bytes.NewBufferString(b)
	case *bytes.Buffer:
		byteBuffer = b
	default:
		kind := reflect.TypeOf(body).Kind()
		if kind != reflect.Struct && kind != reflect.Map && kind != reflect.Slice {
			assert.FailNow(t, "Request body must be a string, *bytes.Buffer, struct, map or slice")
		}

		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		assert.FailNow(t, "environment variable API_URL must be set")
	}

	cfg := config.Default()
	cfg.APIURL = apiURL

	r, teardown, err := router.Config(cfg)
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err.Error())
	}
	router.AttachRoutes(r.Group("/"), service, false)

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
