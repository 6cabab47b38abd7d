package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"motorhub.backend/internal/interfaces/http/handlers"
)

func emptyRouteDeps() routeDeps {
	pass := func(c *gin.Context) { c.Next() }
	return routeDeps{
		authHandler:         &handlers.AuthHandler{},
		listingHandler:      &handlers.ListingHandler{},
		fulfillmentHandler:  &handlers.FulfillmentHandler{},
		paymentHandler:      &handlers.PaymentHandler{},
		kycHandler:          &handlers.KYCHandler{},
		userHandler:         &handlers.UserHandler{},
		notificationHandler: &handlers.NotificationHandler{},
		inquiryHandler:      &handlers.InquiryHandler{},
		adminHandler:        &handlers.AdminHandler{},
		mediaHandler:        &handlers.MediaHandler{},
		streamHandler:       &handlers.StreamHandler{},
		authMiddleware:      pass,
		optionalAuth:        pass,
	}
}

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIV1Routes(r, emptyRouteDeps())

	routes := r.Routes()
	if len(routes) < 50 {
		t.Fatalf("expected many routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/login"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/listings"},
		{"POST", "/api/v1/listings/:id/approve"},
		{"POST", "/api/v1/listings/:id/restore"},
		{"PUT", "/api/v1/bookings/:id/hidden"},
		{"POST", "/api/v1/rentals/:id/transition"},
		{"POST", "/api/v1/payments"},
		{"POST", "/api/v1/payments/:id/verify"},
		{"POST", "/api/v1/kyc"},
		{"POST", "/api/v1/admin/kyc/:userId/approve"},
		{"GET", "/api/v1/admin/stats"},
		{"POST", "/api/v1/admin/broadcasts"},
		{"POST", "/api/v1/notifications/read-all"},
		{"POST", "/api/v1/notifications/:id/read"},
		{"GET", "/api/v1/stream/:collection"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIV1Routes_RouteResponds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)
	registerAPIV1Routes(r, emptyRouteDeps())

	// Smoke: unrelated helper route still works after route registration.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Malformed ids are rejected before any usecase is reached.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/listings/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
