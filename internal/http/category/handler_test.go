package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/category"
	httpcategory "github.com/MrJamesThe3rd/tally/internal/http/category"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func newRouter(repo category.Repository) http.Handler {
	r := chi.NewRouter()
	httpcategory.NewHandler(category.NewService(repo)).Routes(r)

	return r
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *category.MockRepository)
		wantStatus int
		wantName   string
	}

	food := &ledger.Category{ID: uuid.New(), Name: "Food"}

	tests := []testCase{
		{
			name: "Existing",
			body: `{"name":" FOOD "}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().ListCategories(gomock.Any()).Return([]*ledger.Category{food}, nil)
			},
			wantStatus: http.StatusOK,
			wantName:   "Food",
		},
		{
			name: "New",
			body: `{"name":"Gifts"}`,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().ListCategories(gomock.Any()).Return(nil, nil)
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantStatus: http.StatusCreated,
			wantName:   "Gifts",
		},
		{
			name:       "Blank",
			body:       `{"name":"  "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadJSON",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			newRouter(repo).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantName != "" {
				var got struct {
					Name string `json:"name"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantName, got.Name)
			}
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	type testCase struct {
		name       string
		count      int
		deleteErr  error
		wantStatus int
	}

	tests := []testCase{
		{name: "Deleted", wantStatus: http.StatusNoContent},
		{name: "InUse", count: 2, wantStatus: http.StatusConflict},
		{name: "Missing", deleteErr: ledger.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			repo := category.NewMockRepository(ctrl)
			repo.EXPECT().CountExpenses(gomock.Any(), id).Return(tt.count, nil)

			if tt.count == 0 {
				repo.EXPECT().DeleteCategory(gomock.Any(), id).Return(tt.deleteErr)
			}

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+id.String(), nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().ListCategories(gomock.Any()).Return([]*ledger.Category{
		{ID: uuid.New(), Name: "travel"},
		{ID: uuid.New(), Name: "Bills"},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Bills", got[0].Name)
}
