package matching_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	httpmatching "github.com/MrJamesThe3rd/tally/internal/http/matching"
	"github.com/MrJamesThe3rd/tally/internal/matching"
)

func TestHandler_Learn(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *matching.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Stored",
			body: `{"description":"UBER *TRIP","category":" travel "}`,
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().UpsertMapping(gomock.Any(), "UBER *TRIP", "travel").Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{name: "MissingDescription", body: `{"category":"Food"}`, wantStatus: http.StatusBadRequest},
		{name: "BlankCategory", body: `{"description":"LIDL","category":"  "}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			r := chi.NewRouter()
			httpmatching.NewHandler(matching.NewService(repo)).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().ListMappings(gomock.Any()).Return([]matching.Mapping{{Pattern: "pingo doce", Category: "Food"}}, nil)

	r := chi.NewRouter()
	httpmatching.NewHandler(matching.NewService(repo)).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suggest?description=PINGO+DOCE+LISBOA", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"description":"PINGO DOCE LISBOA","category":"Food"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suggest", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
