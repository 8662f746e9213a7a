package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tripapi/internal/models"

	"github.com/gin-gonic/gin"
)

type fakeSearchService struct {
	calls   int
	results []*models.RankedTrip
}

func (f *fakeSearchService) FindTrips(ctx context.Context, criteria *models.SearchCriteria) ([]*models.RankedTrip, error) {
	f.calls++
	return f.results, nil
}

func searchWith(t *testing.T, body string) (*httptest.ResponseRecorder, *fakeSearchService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	searchService := &fakeSearchService{}
	router := gin.New()
	router.POST("/search/trips", NewSearchHandler(searchService).SearchTrips)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/search/trips", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder, searchService
}

func TestSearchTripsRejectsUnknownCriteriaKey(t *testing.T) {
	body := `{
		"origin": "Lagos",
		"destination": "Abuja",
		"leave_date": "2026-09-10",
		"passengers": 2,
		"vehicle_typ": "bus"
	}`

	recorder, searchService := searchWith(t, body)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if searchService.calls != 0 {
		t.Fatalf("search service called %d times for a bad request", searchService.calls)
	}
}

func TestSearchTripsRejectsMissingRequiredFields(t *testing.T) {
	recorder, searchService := searchWith(t, `{"origin": "Lagos"}`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusBadRequest)
	}
	if searchService.calls != 0 {
		t.Fatalf("search service called %d times for a bad request", searchService.calls)
	}
}

func TestSearchTripsAcceptsKnownCriteria(t *testing.T) {
	body := `{
		"origin": "Lagos",
		"destination": "Abuja",
		"leave_date": "2026-09-10",
		"passengers": 2,
		"vehicle_kind": "bus",
		"preferences": {"with_ac": true}
	}`

	recorder, searchService := searchWith(t, body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", recorder.Code, http.StatusOK, recorder.Body.String())
	}
	if searchService.calls != 1 {
		t.Fatalf("search service called %d times, want 1", searchService.calls)
	}
}
