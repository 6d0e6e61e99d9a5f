package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshCLWren/TrailGuard/internal/app/routes"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/code"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/internal/test/testutil"
)

type api struct {
	t        *testing.T
	handler  http.Handler
	notifier *testutil.RecordingNotifier
}

func newAPI(t *testing.T, tweaks ...func(*config.Config)) *api {
	t.Helper()
	cfg := testutil.Config()
	for _, tweak := range tweaks {
		tweak(cfg)
	}
	pool := testutil.NewPool(t)
	testutil.SeedUser(t, pool, "u1")
	testutil.SeedUser(t, pool, "u2")

	notifier := &testutil.RecordingNotifier{}
	c := container.NewServiceContainer(pool, cfg, services.NewLocalCacheService(time.Minute), notifier)
	return &api{t: t, handler: routes.SetupRouter(c, cfg), notifier: notifier}
}

// do sends body as-is when it is a string and as JSON otherwise.
func (a *api) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

type object = map[string]interface{}

func decode(t *testing.T, w *httptest.ResponseRecorder) object {
	t.Helper()
	var out object
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func idOf(resource object) string {
	name := resource["name"].(string)
	return name[strings.LastIndex(name, "/")+1:]
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status, errCode int) object {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, float64(errCode), body["code"])
	return body
}

func TestHealthAndDBInfo(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = a.do(http.MethodGet, "/db", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode(t, w)
	assert.Equal(t, "file::memory:", info["url"])
	assert.Equal(t, "sqlite", info["backend"])
	assert.Equal(t, true, info["ok"])
	assert.Nil(t, info["error"])
}

func TestOpenAPIDocument(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/openapi.json", nil)

	require.Equal(t, http.StatusOK, w.Code)
	doc := decode(t, w)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Equal(t, "TrailGuard API", doc["info"].(object)["title"])
	assert.Contains(t, doc["paths"], "/v1/users/{user_id}/sos:activate")
}

func TestUnknownUserIs404(t *testing.T) {
	a := newAPI(t)

	assertError(t, a.do(http.MethodGet, "/v1/users/ghost", nil), http.StatusNotFound, code.ErrUserNotFound)
	assertError(t, a.do(http.MethodGet, "/v1/users/ghost/devices", nil), http.StatusNotFound, code.ErrUserNotFound)
	assertError(t, a.do(http.MethodPost, "/v1/users/ghost/sos:activate", nil), http.StatusNotFound, code.ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/v1/users/u1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "users/u1", decode(t, w)["name"])
}

func TestDeviceFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/v1/users/u1/devices", object{
		"pairingCode": "ABCD-1234",
		"device":      object{"firmwareVersion": "1.0.0", "batteryPercent": 10},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	device := decode(t, w)
	assert.Equal(t, "OFFLINE", device["connectionState"])
	assert.Equal(t, false, device["solar"])
	assert.NotNil(t, device["pairedAt"])
	assert.NotContains(t, device, "pairingCode")
	id := idOf(device)
	assert.Equal(t, "users/u1/devices/"+id, device["name"])

	assertError(t, a.do(http.MethodPost, "/v1/users/u1/devices", object{"pairingCode": "ABCD-1234"}), http.StatusConflict, code.ErrDeviceAlreadyExist)
	assertError(t, a.do(http.MethodPost, "/v1/users/u1/devices", object{"pairingCode": " ab "}), http.StatusBadRequest, code.ErrInvalidPairingCode)

	w = a.do(http.MethodGet, "/v1/users/u1/devices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.Len(t, list["devices"], 1)
	assert.Contains(t, list, "nextPageToken")
	assert.Nil(t, list["nextPageToken"])

	assertError(t, a.do(http.MethodGet, "/v1/users/u1/devices?pageSize=0", nil), http.StatusBadRequest, code.ErrValidation)
	assertError(t, a.do(http.MethodGet, "/v1/users/u1/devices?pageSize=201", nil), http.StatusBadRequest, code.ErrValidation)

	w = a.do(http.MethodGet, "/v1/users/u1/devices/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assertError(t, a.do(http.MethodGet, "/v1/users/u2/devices/"+id, nil), http.StatusNotFound, code.ErrDeviceNotFound)

	w = a.do(http.MethodPatch, "/v1/users/u1/devices/"+id+"?updateMask=batteryPercent,connectionState", object{
		"batteryPercent":  88,
		"connectionState": "ONLINE",
		"firmwareVersion": "9.9.9",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode(t, w)
	assert.Equal(t, float64(88), patched["batteryPercent"])
	assert.Equal(t, "ONLINE", patched["connectionState"])
	assert.Equal(t, "1.0.0", patched["firmwareVersion"])

	body := assertError(t, a.do(http.MethodPatch, "/v1/users/u1/devices/"+id+"?updateMask=batteryPercent,name", object{"batteryPercent": 1}),
		http.StatusBadRequest, code.ErrInvalidUpdateMask)
	assert.Equal(t, "Unknown field in updateMask: name", body["message"])
	assertError(t, a.do(http.MethodPatch, "/v1/users/u2/devices/"+id+"?updateMask=name", object{}), http.StatusNotFound, code.ErrDeviceNotFound)
	assertError(t, a.do(http.MethodPatch, "/v1/users/u1/devices/missing?updateMask=name", object{}), http.StatusNotFound, code.ErrDeviceNotFound)

	assertError(t, a.do(http.MethodPatch, "/v1/users/u1/devices/"+id, object{"connectionState": "SLEEPING"}), http.StatusBadRequest, code.ErrValidation)
	assertError(t, a.do(http.MethodPatch, "/v1/users/u1/devices/"+id, object{"location": object{"lat": 1}}), http.StatusBadRequest, code.ErrValidation)

	w = a.do(http.MethodGet, "/v1/users/u1/devices/"+id+":checkFirmware", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fw := decode(t, w)
	assert.Equal(t, "1.0.0", fw["currentVersion"])
	assert.Equal(t, "1.2.3", fw["latestVersion"])
	assert.Equal(t, true, fw["updateAvailable"])
	assert.Equal(t, "Improved GPS accuracy and battery reporting.", fw["releaseNotes"])
}

func TestBreadcrumbFlow(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/v1/users/u1/devices", object{"pairingCode": "TRAIL-0001"})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/v1/users/u1/devices/" + idOf(decode(t, w)) + "/breadcrumbs"

	w = a.do(http.MethodPost, base+":batchCreate", object{"breadcrumbs": []object{
		{"position": object{"latitude": 10, "longitude": 20}, "recordTime": "2024-05-01T12:00:00Z"},
		{"position": object{"latitude": 11, "longitude": 21}, "recordTime": "2024-05-01T12:01:00Z", "accuracyMeters": 3},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decode(t, w)["createdCount"])

	w = a.do(http.MethodPost, base+":batchCreate", object{"breadcrumbs": []object{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["createdCount"])

	w = a.do(http.MethodPost, base, object{"breadcrumb": object{"position": object{"latitude": 12, "longitude": 22}}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, base+"?pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	crumbs := list["breadcrumbs"].([]interface{})
	require.Len(t, crumbs, 2)
	assert.Equal(t, float64(12), crumbs[0].(object)["position"].(object)["latitude"])
	assert.Nil(t, list["nextPageToken"])

	assertError(t, a.do(http.MethodGet, base+"?pageSize=5001", nil), http.StatusBadRequest, code.ErrValidation)
	assertError(t, a.do(http.MethodGet, "/v1/users/u2/devices/"+strings.Split(base, "/")[5]+"/breadcrumbs", nil), http.StatusNotFound, code.ErrDeviceNotFound)
}

func TestCheckInFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/v1/users/u1/checkIns", object{"checkIn": object{
		"type":     "ok",
		"message":  "Reached the summit",
		"location": object{"lat": 1, "lng": 2},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "ok", created["type"])
	assert.Equal(t, float64(1), created["location"].(object)["lat"])

	assertError(t, a.do(http.MethodPost, "/v1/users/u1/checkIns", object{"checkIn": object{"message": "no type"}}), http.StatusBadRequest, code.ErrValidation)
	assertError(t, a.do(http.MethodPost, "/v1/users/u1/checkIns", object{"checkIn": object{"type": "ok", "deviceId": "missing"}}), http.StatusNotFound, code.ErrDeviceNotFound)

	w = a.do(http.MethodGet, "/v1/users/u1/checkIns?pageSize=1000", nil)
	require.Equal(t, http.StatusOK, w.Code, "pageSize is clamped")
	assert.Len(t, decode(t, w)["checkIns"], 1)
}

func TestFamilyAndSettingsFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/v1/users/u1/familyMembers", object{"displayName": "Alice", "status": "SAFE"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode(t, w)

	w = a.do(http.MethodGet, "/v1/users/u1/familyMembers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["familyMembers"], 1)

	w = a.do(http.MethodDelete, "/v1/users/u1/familyMembers/"+idOf(member), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assertError(t, a.do(http.MethodDelete, "/v1/users/u1/familyMembers/"+idOf(member), nil), http.StatusNotFound, code.ErrFamilyMemberNotFound)

	w = a.do(http.MethodGet, "/v1/users/u1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode(t, w)
	assert.Equal(t, "users/u1/settings", settings["name"])
	assert.Equal(t, false, settings["autoAlerts"])

	w = a.do(http.MethodPatch, "/v1/users/u1/settings?updateMask=autoAlerts", object{"autoAlerts": true, "sosAutoCall": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	settings = decode(t, w)
	assert.Equal(t, true, settings["autoAlerts"])
	assert.Equal(t, false, settings["sosAutoCall"])

	w = a.do(http.MethodPatch, "/v1/users/u1/settings?updateMask=autoAlerts", object{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["autoAlerts"])

	body := assertError(t, a.do(http.MethodPatch, "/v1/users/u1/settings?updateMask=volume", object{}), http.StatusBadRequest, code.ErrInvalidUpdateMask)
	assert.Equal(t, "Unknown field in updateMask: volume", body["message"])
}

func TestSOSFlow(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/v1/users/u1/sos:activate", object{
		"message":  "help",
		"location": object{"lat": 1, "lng": 2, "accuracyMeters": 5},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode(t, w)
	assert.Equal(t, "users/u1/sos", view["name"])
	assert.Equal(t, true, view["active"])
	assert.Equal(t, object{"lat": float64(1), "lng": float64(2), "accuracyMeters": float64(5)}, view["lastKnownLocation"])

	w = a.do(http.MethodPost, "/v1/users/u1/sos:activate", nil)
	require.Equal(t, http.StatusOK, w.Code, "the body is optional")
	assert.Equal(t, true, decode(t, w)["active"])

	w = a.do(http.MethodPost, "/v1/users/u1/sos:cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["active"])

	w = a.do(http.MethodGet, "/v1/users/u1/sos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["active"])

	events := a.notifier.Events()
	require.Len(t, events, 3)
	assert.Equal(t, services.SOSEventActivated, events[0].Type)
	assert.Equal(t, services.SOSEventUpdated, events[1].Type)
	assert.Equal(t, services.SOSEventCancelled, events[2].Type)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/v1/users/u1/sos:explode", nil).Code)
}

func TestMessageFlow(t *testing.T) {
	a := newAPI(t)

	assertError(t, a.do(http.MethodPost, "/v1/users/u1/messages", object{"text": "   "}), http.StatusBadRequest, code.ErrValidation)

	w := a.do(http.MethodPost, "/v1/users/u1/messages", object{"text": "Camping at the north lake tonight"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/v1/users/u1/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["messages"], 1)
}

func TestListResponsesAreCachedUntilAWrite(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/v1/users/u1/devices", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	w = a.do(http.MethodGet, "/v1/users/u1/devices", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Empty(t, decode(t, w)["devices"])

	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/users/u1/devices", object{"pairingCode": "CACHE-01"}).Code)

	w = a.do(http.MethodGet, "/v1/users/u1/devices", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Len(t, decode(t, w)["devices"], 1)
}

func TestRateLimit(t *testing.T) {
	a := newAPI(t, func(cfg *config.Config) { cfg.RateLimit = "2-M" })

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/users/u1", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/users/u1", nil).Code)

	w := a.do(http.MethodGet, "/v1/users/u1", nil)
	assertError(t, w, http.StatusTooManyRequests, code.ErrTooManyRequests)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", nil).Code, "health is never limited")
}

func TestCORSPreflight(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/users/u1/devices", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	w := httptest.NewRecorder()

	a.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:8000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/users/u1/devices", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodGet, "/v1/users/u1", nil)

	w := a.do(http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `trailguard_http_requests_total{method="GET",route="/v1/users/:user_id",status="200"}`)
}
