package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/client/models"
	"github.com/olivecrm/olivecrm/internal/common"
	"github.com/olivecrm/olivecrm/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client(), logging.NewNopLogger())
}

func TestLogin_SendsCredentialsAndDecodesResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "alice", req.Username)
		require.Equal(t, "secret", req.Password)
		require.True(t, req.RememberMe)

		json.NewEncoder(w).Encode(models.LoginResponse{
			Access:    "a1",
			Refresh:   "r1",
			User:      models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin},
			ExpiresIn: 900,
		})
	}))

	resp, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "secret", RememberMe: true})
	require.NoError(t, err)
	require.Equal(t, "a1", resp.Access)
	require.Equal(t, "r1", resp.Refresh)
	require.Equal(t, models.RoleAdmin, resp.User.Role)
	require.Equal(t, int64(900), resp.ExpiresIn)
}

func TestListBarrels_PaginationQueryAndEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/barrels/", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "25", q.Get("page_size"))
		require.Equal(t, "cellar", q.Get("search"))
		require.Equal(t, "-capacity", q.Get("ordering"))

		next := "/barrels/?page=3"
		json.NewEncoder(w).Encode(Paginated[models.Barrel]{
			Count: 51,
			Next:  &next,
			Results: []models.Barrel{
				{ID: 1, BarrelNumber: "B-001", Capacity: 500, CurrentVolume: 320, Location: "cellar"},
			},
		})
	}))

	page, err := c.ListBarrels(context.Background(), ListOptions{Page: 2, PageSize: 25, Search: "cellar", Ordering: "-capacity"})
	require.NoError(t, err)
	require.Equal(t, 51, page.Count)
	require.NotNil(t, page.Next)
	require.Len(t, page.Results, 1)
	require.Equal(t, "B-001", page.Results[0].BarrelNumber)
}

func TestErrorEnvelope_MapsToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, common.ErrorUnauthorized},
		{"forbidden", http.StatusForbidden, common.ErrorForbidden},
		{"not found", http.StatusNotFound, common.ErrorNotFound},
		{"conflict", http.StatusConflict, common.ErrorAlreadyExists},
		{"validation", http.StatusBadRequest, common.ErrorValidation},
		{"internal", http.StatusInternalServerError, common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
			}))

			_, err := c.GetBarrel(context.Background(), 7)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, "boom", apiErr.Message)
		})
	}
}

func TestDeleteBarrel_NoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/barrels/3/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteBarrel(context.Background(), 3))
}

func TestRefresh_OmitsRotatedTokenWhenAbsent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "r1", req.Refresh)
		json.NewEncoder(w).Encode(models.TokenRefreshResponse{Access: "a2"})
	}))

	resp, err := c.Refresh(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "a2", resp.Access)
	require.Empty(t, resp.Refresh)
}

func TestSalesSummary(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sales/summary/", r.URL.Path)
		json.NewEncoder(w).Encode(models.SalesSummary{
			TotalSales:        4,
			TotalRevenue:      1200,
			AverageOrderValue: 300,
			TopProducts:       []models.ProductSales{{ProductName: "Picual 500ml", Quantity: 20, Revenue: 800}},
		})
	}))

	summary, err := c.SalesSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, summary.TotalSales)
	require.Equal(t, "Picual 500ml", summary.TopProducts[0].ProductName)
}
