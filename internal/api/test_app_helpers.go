package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/srijalk/portfolio-backend/internal/db"
	"github.com/srijalk/portfolio-backend/internal/services"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []services.ContactInput
}

func (mailer *recordingMailer) SendContactMessage(input services.ContactInput) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.sent = append(mailer.sent, input)
	return nil
}

func (mailer *recordingMailer) sentCount() int {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return len(mailer.sent)
}

func newContactTestApp(t *testing.T) (*fiber.App, *Handler, *recordingMailer) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "portfolio-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mailer := &recordingMailer{}
	handler := NewHandler(database, Config{
		CookieSecure: false,
		TrustProxy:   true,
		Mailer:       mailer,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, mailer
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	request := httptest.NewRequest(method, target, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func decodeJSONBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	decoded := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return decoded
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
