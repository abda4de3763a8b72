package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/config"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, _ := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Video{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		CORSAllowedOrigins: "https://ajuda.sincsuite.com.br",
	}

	h := NewHandler(
		cfg,
		logger,
		db,
		services.NewCategoryService(db),
		services.NewUserService(db),
		services.NewVideoService(db),
		services.NewAuthService(db, logger),
		services.NewAuditService(db, logger),
	)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			json.NewEncoder(&buf).Encode(b)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	json.Unmarshal(w.Body.Bytes(), &v)
	return v
}
