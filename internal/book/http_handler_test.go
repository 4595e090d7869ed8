package book

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshelf/internal/platform/database"
	"bookshelf/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

var testBook = Book{
	ID:     1,
	Title:  "Hands-on Rust",
	Author: "Wolverson, Herbert",
}

func newTestMux(t *testing.T) (*http.ServeMux, *MockRepository, *logtest.Hook) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRepository(ctrl)
	logger, hook := logtest.NewNullLogger()

	mux := http.NewServeMux()
	NewHTTPHandler(NewService(mockRepo), logger).Register(mux)
	return mux, mockRepo, hook
}

func TestHTTPHandler_List(t *testing.T) {
	mux, mockRepo, hook := newTestMux(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{testBook}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `[{"id":1,"title":"Hands-on Rust","author":"Wolverson, Herbert"}]`, string(resp.Body))
	})

	t.Run("empty store", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("storage error", func(t *testing.T) {
		hook.Reset()
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, database.Classify(context.DeadlineExceeded))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "STORAGE_UNAVAILABLE", testutil.ErrorCode(t, w.Body.Bytes()))
		if assert.NotNil(t, hook.LastEntry()) {
			assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
		}
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	mux, mockRepo, _ := newTestMux(t)

	tests := []struct {
		name           string
		path           string
		setupMock      func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			path: "/books/1",
			setupMock: func() {
				mockRepo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(testBook, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/books/404",
			setupMock: func() {
				mockRepo.EXPECT().GetByID(gomock.Any(), int64(404)).Return(Book{}, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name: "store unreachable",
			path: "/books/2",
			setupMock: func() {
				opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
				mockRepo.EXPECT().GetByID(gomock.Any(), int64(2)).Return(Book{}, database.Classify(opErr))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "STORAGE_UNAVAILABLE",
		},
		{
			name:           "non-integer id",
			path:           "/books/abc",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, testutil.ErrorCode(t, w.Body.Bytes()))
			}
		})
	}
}

func TestHTTPHandler_Create(t *testing.T) {
	mux, mockRepo, _ := newTestMux(t)

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
		expectedBody   string
		expectedCode   string
	}{
		{
			name: "success ignores id",
			body: map[string]any{"id": -1, "title": "Test Book", "author": "Test Author", "isbn": "unused"},
			setupMock: func() {
				mockRepo.EXPECT().Create(gomock.Any(), "Test Book", "Test Author").Return(int64(42), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "42",
		},
		{
			name:           "missing author",
			body:           map[string]any{"title": "Test Book"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "blank title",
			body:           map[string]any{"title": "  ", "author": "Test Author"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
		{
			name:           "trailing data after object",
			body:           `{"title":"a","author":"b"} not json`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
		{
			name:           "two objects",
			body:           `{"title":"a","author":"b"}{"title":"c","author":"d"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
		{
			name: "trailing whitespace is fine",
			body: "{\"title\":\"Test Book\",\"author\":\"Test Author\"}\n  ",
			setupMock: func() {
				mockRepo.EXPECT().Create(gomock.Any(), "Test Book", "Test Author").Return(int64(43), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "43",
		},
		{
			name: "storage error",
			body: map[string]any{"title": "Test Book", "author": "Test Author"},
			setupMock: func() {
				mockRepo.EXPECT().Create(gomock.Any(), "Test Book", "Test Author").
					Return(int64(0), database.Classify(errors.New("database is locked")))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "STORAGE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books/add", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, testutil.ErrorCode(t, w.Body.Bytes()))
			}
		})
	}
}

func TestHTTPHandler_Update(t *testing.T) {
	mux, mockRepo, _ := newTestMux(t)

	t.Run("success", func(t *testing.T) {
		updated := Book{ID: 1, Title: "Updated book", Author: "Wolverson, Herbert"}
		mockRepo.EXPECT().Update(gomock.Any(), updated).Return(nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/edit", updated))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/edit", map[string]any{"title": "t", "author": "a"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank title", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/edit", Book{ID: 1, Title: "", Author: "a"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(database.Classify(errors.New("disk full")))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/edit", testBook))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	mux, mockRepo, _ := newTestMux(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/books/delete/9", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("non-integer id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/books/delete/nine", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		mockRepo.EXPECT().Delete(gomock.Any(), int64(9)).Return(database.Classify(context.DeadlineExceeded))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/books/delete/9", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/delete/9", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
