package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/orzutravel/api/internal/config"
	"github.com/orzutravel/api/internal/infrastructure/telegram"
	"github.com/orzutravel/api/internal/server"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGoldenPath walks the full admin and visitor flow against a real
// MongoDB container, miniredis and a fake Telegram Bot API.
func TestGoldenPath(t *testing.T) {
	// 1. Setup Infrastructure
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	mockAuth := NewMockAuthClient()
	mockAuth.AddMockUser("firebase_token_admin", "uid_admin", "admin@orzutravel.uz")

	tgServer, sentMessages := StartFakeTelegramAPI(t)
	bot := telegram.NewClient(telegram.Config{
		BotToken: "test-bot",
		ChatID:   "chat",
		BaseURL:  tgServer.URL,
	})

	cfg := &config.Config{}
	cfg.Server.MaxUploadSizeMB = 10
	cfg.JWT.Secret = "test-secret-key-123"

	// 2. Initialize App
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		AuthClient:  mockAuth,
		Uploader:    bot,
		Notifier:    bot,
	})

	request := func(method, path, token string, body interface{}) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response) map[string]interface{} {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	// ==========================================
	// STEP 1: Admin Login
	// ==========================================
	resp := request("POST", "/v1/auth/login", "", map[string]string{
		"firebase_token": "firebase_token_admin",
	})
	require.Equal(t, 200, resp.StatusCode)

	loginBody := decode(resp)
	adminToken := loginBody["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, adminToken)

	// Admin routes reject requests without the session token.
	resp = request("GET", "/v1/admin/packages/", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	// ==========================================
	// STEP 2: Upload media via the relay
	// ==========================================
	var mpBody bytes.Buffer
	mw := multipart.NewWriter(&mpBody)
	part, err := mw.CreateFormFile("media", "registan.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	mpReq, _ := http.NewRequest("POST", "/v1/admin/media", &mpBody)
	mpReq.Header.Set("Content-Type", mw.FormDataContentType())
	mpReq.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(mpReq, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	mediaBody := decode(resp)
	mediaItems := mediaBody["data"].([]interface{})
	require.Len(t, mediaItems, 1)
	firstItem := mediaItems[0].(map[string]interface{})
	assert.Equal(t, "photo", firstItem["type"])
	assert.Contains(t, firstItem["url"], "photos/photo_1.jpg")

	// ==========================================
	// STEP 3: Create a package
	// ==========================================
	resp = request("POST", "/v1/admin/packages/", adminToken, map[string]interface{}{
		"name":  map[string]string{"uz": "Samarqand turi", "ru": "Тур в Самарканд"},
		"price": 1200000,
		"text":  map[string]string{"uz": "**Registon** maydoni", "ru": "площадь **Регистан**"},
		"media": []interface{}{firstItem},
	})
	require.Equal(t, 201, resp.StatusCode)

	createBody := decode(resp)
	created := createBody["data"].(map[string]interface{})
	appID := created["id"].(string)
	storeID := created["storeId"].(string)
	require.NotEmpty(t, appID)
	require.NotEmpty(t, storeID)

	// ==========================================
	// STEP 4: Public list and detail
	// ==========================================
	resp = request("GET", "/v1/packages?locale=ru", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	listBody := decode(resp)
	listData := listBody["data"].([]interface{})
	require.Len(t, listData, 1)
	assert.Equal(t, "Тур в Самарканд", listData[0].(map[string]interface{})["name"])

	resp = request("GET", "/v1/packages/"+appID+"?locale=uz", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	detailBody := decode(resp)
	detail := detailBody["data"].(map[string]interface{})
	assert.Equal(t, "Samarqand turi", detail["name"])
	assert.Contains(t, detail["text"], "<strong>Registon</strong>")

	// ==========================================
	// STEP 5: Update the package, list reflects it
	// ==========================================
	resp = request("PATCH", "/v1/admin/packages/"+storeID, adminToken, map[string]interface{}{
		"price": 999000,
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/packages", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	listBody = decode(resp)
	updated := listBody["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(999000), updated["price"])

	// ==========================================
	// STEP 6: Booking inquiry reaches the channel
	// ==========================================
	resp = request("POST", "/v1/inquiries/booking", "", map[string]interface{}{
		"package_name": "Samarqand turi",
		"name":         "Aziz",
		"phone":        "+998901234567",
		"date":         "2026-09-15",
		"people":       3,
	})
	require.Equal(t, 200, resp.StatusCode)
	require.Len(t, *sentMessages, 1)
	assert.Contains(t, (*sentMessages)[0], "📦 *Paketni bron qilish*")
	assert.Contains(t, (*sentMessages)[0], "Samarqand turi")

	// ==========================================
	// STEP 7: Delete and verify gone
	// ==========================================
	resp = request("DELETE", "/v1/admin/packages/"+storeID, adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/packages/"+appID, "", nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp = request("GET", "/v1/packages", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	listBody = decode(resp)
	assert.Empty(t, listBody["data"])
}

// TestLoginRejectsBadToken covers the auth failure path end to end.
func TestLoginRejectsBadToken(t *testing.T) {
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{}
	cfg.Server.MaxUploadSizeMB = 10
	cfg.JWT.Secret = "test-secret-key-123"

	tgServer, _ := StartFakeTelegramAPI(t)
	bot := telegram.NewClient(telegram.Config{BotToken: "b", ChatID: "c", BaseURL: tgServer.URL})

	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		AuthClient:  NewMockAuthClient(),
		Uploader:    bot,
		Notifier:    bot,
	})

	body, _ := json.Marshal(map[string]string{"firebase_token": "forged"})
	req, _ := http.NewRequest("POST", "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
