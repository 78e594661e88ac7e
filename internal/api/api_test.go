package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"

	"unyson/internal/app"
	"unyson/internal/config"
	"unyson/internal/host"
	"unyson/internal/util"
)

type fakeLister []string

func (f fakeLister) Versions(ctx context.Context, slug string) ([]string, error) {
	return f, nil
}

func newTestServer(t *testing.T, origin string) (*httptest.Server, *host.Memory) {
	mem := host.NewMemory("2.1.9")
	mem.Extensions["backups"] = &host.ExtensionState{Version: "1.0.4", Installed: true, Active: true}
	mem.Extensions["seo"] = &host.ExtensionState{Version: "1.2.0", Installed: true}
	a := &app.Context{Config: config.Default(), Host: mem, Lister: fakeLister{"2.1.2", "2.1.9", "2.1.10"}}

	srv := httptest.NewServer(NewRouter(a, origin))
	t.Cleanup(srv.Close)
	return srv, mem
}

func getJSON(t *testing.T, url string, into interface{}) int {
	resp, err := http.Get(url)
	qt.Assert(t, err, qt.IsNil)
	defer resp.Body.Close()
	qt.Assert(t, resp.Header.Get("Content-Type"), qt.Equals, "application/json")
	qt.Assert(t, json.NewDecoder(resp.Body).Decode(into), qt.IsNil)
	return resp.StatusCode
}

func TestRoot(t *testing.T) {
	srv, _ := newTestServer(t, "")
	var body map[string]string
	qt.Assert(t, getJSON(t, srv.URL+"/", &body), qt.Equals, http.StatusOK)
	qt.Assert(t, body["status"], qt.Equals, "Unyson API server running")
}

func TestGetPlugin(t *testing.T) {
	srv, mem := newTestServer(t, "")
	var status pluginStatus
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/unyson", &status), qt.Equals, http.StatusOK)
	qt.Assert(t, status.Installed, qt.IsTrue)
	qt.Assert(t, status.Active, qt.IsTrue)
	qt.Assert(t, status.Plugin.Version, qt.Equals, "2.1.9")

	mem.Installed = false
	status = pluginStatus{}
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/unyson", &status), qt.Equals, http.StatusOK)
	qt.Assert(t, status.Installed, qt.IsFalse)
	qt.Assert(t, status.Plugin, qt.IsNil)
}

func TestListVersions(t *testing.T) {
	srv, _ := newTestServer(t, "")
	var entries []versionEntry
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/unyson/versions", &entries), qt.Equals, http.StatusOK)
	qt.Assert(t, entries, qt.DeepEquals, []versionEntry{
		{Version: "2.1.2"},
		{Version: "2.1.9", Current: true},
		{Version: "2.1.10"},
	})
}

func TestExtensions(t *testing.T) {
	srv, _ := newTestServer(t, "")
	var list []extensionStatus
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/extensions", &list), qt.Equals, http.StatusOK)
	qt.Assert(t, list, qt.DeepEquals, []extensionStatus{
		{Name: "backups", Installed: true, Active: true},
		{Name: "seo", Installed: true},
	})

	var one extensionStatus
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/extensions/backups", &one), qt.Equals, http.StatusOK)
	qt.Assert(t, one, qt.DeepEquals, extensionStatus{Name: "backups", Installed: true, Active: true, Version: "1.0.4"})

	var missing map[string]interface{}
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/extensions/ghost", &missing), qt.Equals, http.StatusNotFound)
	qt.Assert(t, missing["code"], qt.Equals, "unyson-error-extension-not-found")
}

func TestExtensionsNeedActiveFramework(t *testing.T) {
	srv, mem := newTestServer(t, "")
	mem.Active = false
	var body map[string]interface{}
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/extensions", &body), qt.Equals, http.StatusConflict)
	qt.Assert(t, body["code"], qt.Equals, "unyson-error-not-active")
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, "http://localhost:3000")
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/unyson", nil)
	qt.Assert(t, err, qt.IsNil)
	resp, err := http.DefaultClient.Do(req)
	qt.Assert(t, err, qt.IsNil)
	resp.Body.Close()
	qt.Assert(t, resp.StatusCode, qt.Equals, http.StatusOK)
	qt.Assert(t, resp.Header.Get("Access-Control-Allow-Origin"), qt.Equals, "http://localhost:3000")
}

func TestListenAddr(t *testing.T) {
	qt.Assert(t, ListenAddr("", ""), qt.Equals, "127.0.0.1:8585")
	qt.Assert(t, ListenAddr("localhost", "9000"), qt.Equals, "127.0.0.1:9000")
	qt.Assert(t, ListenAddr("0.0.0.0", ""), qt.Equals, "0.0.0.0:8585")
	qt.Assert(t, ListenAddr("not a host", ""), qt.Equals, "127.0.0.1:8585")
}

func TestRequestsAreLoggedWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	util.InitLoggerTo(&buf, false)
	t.Cleanup(func() { util.InitLoggerTo(os.Stderr, false) })
	util.EnsureLevel(logrus.InfoLevel)

	srv, _ := newTestServer(t, "")
	var body map[string]interface{}
	qt.Assert(t, getJSON(t, srv.URL+"/api/v1/unyson", &body), qt.Equals, http.StatusOK)
	qt.Assert(t, buf.String(), qt.Contains, "API request")
	qt.Assert(t, buf.String(), qt.Contains, "/api/v1/unyson")
}
