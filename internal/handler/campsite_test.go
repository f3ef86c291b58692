package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uma-arai/sbcntr-creekriver/internal/model"
	"github.com/uma-arai/sbcntr-creekriver/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performRequest はルーターにリクエストを送り、レスポンスを返します
func performRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newMockRouter(campsiteRepo *MockCampsiteRepository, reservationRepo *MockReservationRepository) *gin.Engine {
	if campsiteRepo == nil {
		campsiteRepo = &MockCampsiteRepository{}
	}
	if reservationRepo == nil {
		reservationRepo = &MockReservationRepository{}
	}
	return NewRouter(NewHandler(campsiteRepo, reservationRepo))
}

func strPtr(s string) *string { return &s }

func TestHealth(t *testing.T) {
	w := performRequest(newMockRouter(nil, nil), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListCampsites(t *testing.T) {
	tests := []struct {
		name       string
		campsites  []model.Campsite
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "一覧を返す",
			campsites: []model.Campsite{
				{ID: 1, Nickname: "Barred Owl", ImageURL: strPtr("https://example.com/1.jpg"), CampsiteTypeID: 1},
				{ID: 2, Nickname: "No Image", CampsiteTypeID: 2},
			},
			wantStatus: http.StatusOK,
			wantBody: `[
				{"id":1,"nickname":"Barred Owl","imageUrl":"https://example.com/1.jpg","campsiteTypeId":1},
				{"id":2,"nickname":"No Image","imageUrl":null,"campsiteTypeId":2}
			]`,
		},
		{
			name:       "0件の場合は空配列",
			campsites:  []model.Campsite{},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "リポジトリのエラーは500",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCampsiteRepository{campsites: tt.campsites, err: tt.err}
			w := performRequest(newMockRouter(repo, nil), http.MethodGet, "/api/campsites", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestGetCampsite(t *testing.T) {
	campsite := &model.Campsite{
		ID:             1,
		Nickname:       "Barred Owl",
		ImageURL:       strPtr("https://example.com/1.jpg"),
		CampsiteTypeID: 1,
		CampsiteType: &model.CampsiteType{
			ID:                 1,
			CampsiteTypeName:   "Tent",
			MaxReservationDays: 7,
			FeePerNight:        decimal.RequireFromString("15.99"),
		},
	}

	tests := []struct {
		name       string
		path       string
		campsite   *model.Campsite
		err        error
		wantStatus int
		wantBody   string
		wantJSON   bool
		wantCalled bool
	}{
		{
			name:       "種別を含めて返す",
			path:       "/api/campsites/1",
			campsite:   campsite,
			wantStatus: http.StatusOK,
			wantBody: `{"id":1,"nickname":"Barred Owl","imageUrl":"https://example.com/1.jpg","campsiteTypeId":1,
				"campsiteType":{"id":1,"campsiteTypeName":"Tent","maxReservationDays":7,"feePerNight":15.99}}`,
			wantJSON:   true,
			wantCalled: true,
		},
		{
			name:       "存在しない場合はメッセージ付きの404",
			path:       "/api/campsites/999",
			err:        fmt.Errorf("campsite 999: %w", repository.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "Campsite not found",
			wantCalled: true,
		},
		{
			name:       "IDが数値でない場合は400",
			path:       "/api/campsites/abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCampsiteRepository{campsite: tt.campsite, err: tt.err}
			w := performRequest(newMockRouter(repo, nil), http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantJSON {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			assert.Equal(t, tt.wantCalled, repo.called)
		})
	}
}

func TestCreateCampsite(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		err          error
		wantStatus   int
		wantLocation string
		wantBody     string
		wantCalled   bool
	}{
		{
			name:         "作成して201とLocationを返す",
			body:         `{"nickname":"Cedar Hollow","imageUrl":"https://example.com/c.jpg","campsiteTypeId":1}`,
			wantStatus:   http.StatusCreated,
			wantLocation: "/api/campsites/7",
			wantBody:     `{"id":7,"nickname":"Cedar Hollow","imageUrl":"https://example.com/c.jpg","campsiteTypeId":1}`,
			wantCalled:   true,
		},
		{
			name:       "不正なJSONは400",
			body:       `{"nickname":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
			wantCalled: false,
		},
		{
			name:       "型が合わない項目は400",
			body:       `{"nickname":"X","campsiteTypeId":"one"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
			wantCalled: false,
		},
		{
			name:       "制約違反は400",
			body:       `{"nickname":"X","campsiteTypeId":99}`,
			err:        fmt.Errorf("failed to create campsite: %w", repository.ErrInvalidData),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCampsiteRepository{nextID: 7, err: tt.err}
			w := performRequest(newMockRouter(repo, nil), http.MethodPost, "/api/campsites", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, repo.called)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
				assert.JSONEq(t, tt.wantBody, w.Body.String())
				assert.Equal(t, "Cedar Hollow", repo.gotCampsite.Nickname)
				return
			}
			assert.Equal(t, tt.wantBody, w.Body.String())
			assert.Empty(t, w.Header().Get("Location"))
		})
	}
}

func TestUpdateCampsite(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "更新して204を返す",
			path:       "/api/campsites/1",
			body:       `{"nickname":"X","imageUrl":null,"campsiteTypeId":2}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "存在しない場合は本文なしの404",
			path:       "/api/campsites/999",
			body:       `{"nickname":"X","campsiteTypeId":1}`,
			err:        fmt.Errorf("campsite 999: %w", repository.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "制約違反は400",
			path:       "/api/campsites/1",
			body:       `{"nickname":"X","campsiteTypeId":99}`,
			err:        fmt.Errorf("failed to update campsite: %w", repository.ErrInvalidData),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
		},
		{
			name:       "不正なJSONは400",
			path:       "/api/campsites/1",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid data submitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCampsiteRepository{err: tt.err}
			w := performRequest(newMockRouter(repo, nil), http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}

	t.Run("パスのIDと送信内容をリポジトリに渡す", func(t *testing.T) {
		repo := &MockCampsiteRepository{}
		w := performRequest(newMockRouter(repo, nil), http.MethodPut, "/api/campsites/3",
			`{"nickname":"Renamed","imageUrl":"https://example.com/r.jpg","campsiteTypeId":4}`)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(3), repo.gotID)
		assert.Equal(t, "Renamed", repo.gotCampsite.Nickname)
		assert.Equal(t, int64(4), repo.gotCampsite.CampsiteTypeID)
		require.NotNil(t, repo.gotCampsite.ImageURL)
		assert.Equal(t, "https://example.com/r.jpg", *repo.gotCampsite.ImageURL)
	})
}

func TestDeleteCampsite(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "削除して204を返す", path: "/api/campsites/1", wantStatus: http.StatusNoContent},
		{name: "存在しない場合は404", path: "/api/campsites/999", err: repository.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "IDが数値でない場合は400", path: "/api/campsites/x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockCampsiteRepository{err: tt.err}
			w := performRequest(newMockRouter(repo, nil), http.MethodDelete, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	router := newMockRouter(&MockCampsiteRepository{campsites: []model.Campsite{}}, nil)

	t.Run("未指定の場合は採番する", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/campsites", "")

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
	})

	t.Run("UUIDが指定された場合はそのまま返す", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/campsites", nil)
		req.Header.Set(RequestIDHeader, "0b8f7f1c-3c1e-4b5d-9f0a-2d4e6a8c0b12")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "0b8f7f1c-3c1e-4b5d-9f0a-2d4e6a8c0b12", w.Header().Get(RequestIDHeader))
	})

	t.Run("UUIDでない値は置き換える", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/campsites", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "<script>", id)
		assert.Len(t, id, 36)
	})
}

// decodeJSON はレスポンスボディをデコードします
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
