package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipromptweb_backend/test/helpers"
)

func uploadFile(t *testing.T, ts *helpers.TestServer, filename string, content []byte) (*http.Response, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Origin", "http://localhost:5173")

	res, err := ts.Client.Do(req)
	require.NoError(t, err)
	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	defer res.Body.Close()

	return res, string(resBody)
}

func TestUploadAndServe(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)
	helpers.CreateAndLoginAdmin(t, ts)

	content := []byte("fake webp bytes")
	res, body := uploadFile(t, ts, "picture.webp", content)
	require.Equal(t, http.StatusCreated, res.StatusCode, "upload should succeed: %s", body)

	var uploaded struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &uploaded))
	require.NotEmpty(t, uploaded.Path)
	assert.NotEqual(t, "picture.webp", uploaded.Path, "stored key must be randomized")

	// The object is publicly served under /images with an immutable
	// cache directive.
	getRes, err := ts.Client.Get(ts.Server.URL + "/images/" + uploaded.Path)
	require.NoError(t, err)
	defer getRes.Body.Close()

	require.Equal(t, http.StatusOK, getRes.StatusCode)
	served, err := io.ReadAll(getRes.Body)
	require.NoError(t, err)
	assert.Equal(t, content, served)
	assert.Contains(t, getRes.Header.Get("Cache-Control"), "immutable")
}

func TestUpload_RequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)
	helpers.CreateAndLoginMember(t, ts)

	res, _ := uploadFile(t, ts, "picture.webp", []byte("x"))
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestUpload_MissingFile(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)
	helpers.CreateAndLoginAdmin(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/upload", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestServeUnknownObject(t *testing.T) {
	ts := GetTestServer(t)

	res, err := ts.Client.Get(ts.Server.URL + "/images/no-such-key.webp")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
