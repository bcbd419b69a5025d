package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/domain"
	"github.com/pennyhq/penny/penny-backend/internal/service"
	"github.com/pennyhq/penny/penny-backend/internal/testutil"
)

// newMultipartContext builds an echo context for a multipart upload. fields
// are written before the file part; an empty filename omits the file.
func newMultipartContext(t *testing.T, target, filename string, content []byte, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(content)
	}
	writer.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func newProfileHandlerForTest(files *testutil.MockFileRepository) (*ProfileHandler, *testutil.MockUserRepository) {
	users := testutil.NewMockUserRepository()
	users.AddUser(&domain.User{ID: 1, Email: "owner@example.com"}, "Owner")
	users.AddUser(&domain.User{ID: 2, Email: "other@example.com"}, "Other")

	var userService *service.UserService
	var avatarService *service.AvatarService
	if files != nil {
		userService = service.NewUserService(users, users, nil, files)
		avatarService = service.NewAvatarService(users, files)
	} else {
		userService = service.NewUserService(users, users, nil, nil)
		avatarService = service.NewAvatarService(users, nil)
	}
	return NewProfileHandler(userService, avatarService), users
}

func TestGetProfile_Success(t *testing.T) {
	handler, _ := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodGet, "/api/v1/profile/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Email != "owner@example.com" || response.FullName != "Owner" {
		t.Errorf("Unexpected profile %+v", response)
	}
	if response.AvatarURL != nil {
		t.Errorf("Expected no avatar, got %s", *response.AvatarURL)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	handler, _ := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodGet, "/api/v1/profile/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetProfile_InvalidID(t *testing.T) {
	handler, _ := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodGet, "/api/v1/profile/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.GetProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	handler, users := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodPut, "/api/v1/profile/1", `{"fullName": "  New Name  "}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, 1)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if users.Profiles[1].FullName != "New Name" {
		t.Errorf("Expected trimmed name to be stored, got %q", users.Profiles[1].FullName)
	}
}

func TestUpdateProfile_OtherUserForbidden(t *testing.T) {
	handler, users := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodPut, "/api/v1/profile/2", `{"fullName": "Hijacked"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	setupAuthContext(c, 1)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	if users.Profiles[2].FullName != "Other" {
		t.Error("Expected other profile to be unchanged")
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"fullName": "   "}`},
		{"name too long", `{"fullName": "` + strings.Repeat("a", 201) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newProfileHandlerForTest(nil)
			c, rec := newJSONContext(http.MethodPut, "/api/v1/profile/1", tt.body)
			c.SetParamNames("id")
			c.SetParamValues("1")
			setupAuthContext(c, 1)

			if err := handler.UpdateProfile(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestUpdateProfile_Unauthenticated(t *testing.T) {
	handler, _ := newProfileHandlerForTest(nil)

	c, rec := newJSONContext(http.MethodPut, "/api/v1/profile/1", `{"fullName": "Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestUploadAvatar_Success(t *testing.T) {
	files := testutil.NewMockFileRepository()
	handler, users := newProfileHandlerForTest(files)

	c, rec := newMultipartContext(t, "/api/v1/profile/1/avatar", "me.png", createTestPNG(t, 120, 80), nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, 1)

	if err := handler.UploadAvatar(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.AvatarURL == nil || !strings.HasPrefix(*response.AvatarURL, "https://files.test/") {
		t.Errorf("Expected presigned avatar URL, got %v", response.AvatarURL)
	}
	if users.Profiles[1].AvatarKey == nil {
		t.Fatal("Expected avatar key to be stored")
	}
	if files.ContentType[*users.Profiles[1].AvatarKey] != "image/jpeg" {
		t.Error("Expected avatar to be stored as JPEG")
	}
}

func TestUploadAvatar_Errors(t *testing.T) {
	tests := []struct {
		name     string
		actor    int32
		filename string
		content  func(t *testing.T) []byte
		expected int
	}{
		{"other user", 2, "me.png", func(t *testing.T) []byte { return createTestPNG(t, 100, 100) }, http.StatusForbidden},
		{"unsupported format", 1, "me.bmp", func(t *testing.T) []byte { return createTestPNG(t, 100, 100) }, http.StatusBadRequest},
		{"too small", 1, "me.png", func(t *testing.T) []byte { return createTestPNG(t, 20, 20) }, http.StatusBadRequest},
		{"not an image", 1, "me.png", func(t *testing.T) []byte { return []byte("plain text") }, http.StatusBadRequest},
		{"no file", 1, "", func(t *testing.T) []byte { return nil }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := testutil.NewMockFileRepository()
			handler, _ := newProfileHandlerForTest(files)

			c, rec := newMultipartContext(t, "/api/v1/profile/1/avatar", tt.filename, tt.content(t), nil)
			c.SetParamNames("id")
			c.SetParamValues("1")
			setupAuthContext(c, tt.actor)

			if err := handler.UploadAvatar(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
			if len(files.Objects) != 0 {
				t.Errorf("Expected nothing stored, got %d objects", len(files.Objects))
			}
		})
	}
}

func TestUploadAvatar_StorageDisabled(t *testing.T) {
	handler, _ := newProfileHandlerForTest(nil)

	c, rec := newMultipartContext(t, "/api/v1/profile/1/avatar", "me.png", createTestPNG(t, 100, 100), nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContext(c, 1)

	if err := handler.UploadAvatar(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
