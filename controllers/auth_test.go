package controllers

import (
	"testing"

	"schooladmin_go/models"
	"schooladmin_go/utils"
)

func TestLogin(t *testing.T) {
	db := setupTest(t)

	admin := models.Admin{
		Username: "admin",
		Password: mustHash(t, "admin123"),
		Name:     "System",
		Surname:  "Administrator",
		Email:    "admin@school.local",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	app := testApp()
	authController := &AuthController{}
	app.Post("/api/auth/login", authController.Login)

	tests := []struct {
		name      string
		body      LoginRequest
		expStatus int
	}{
		{
			name:      "valid credentials",
			body:      LoginRequest{Role: utils.RoleAdmin, Username: "admin", Password: "admin123"},
			expStatus: 200,
		},
		{
			name:      "wrong password",
			body:      LoginRequest{Role: utils.RoleAdmin, Username: "admin", Password: "wrong"},
			expStatus: 401,
		},
		{
			name:      "unknown username",
			body:      LoginRequest{Role: utils.RoleAdmin, Username: "nonexistent", Password: "anything"},
			expStatus: 404,
		},
		{
			name:      "admin not in teacher table",
			body:      LoginRequest{Role: utils.RoleTeacher, Username: "admin", Password: "admin123"},
			expStatus: 404,
		},
		{
			name:      "unsupported role",
			body:      LoginRequest{Role: "owner", Username: "admin", Password: "admin123"},
			expStatus: 400,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, "POST", "/api/auth/login", tc.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != tc.expStatus {
				t.Fatalf("expected status %d, got %d", tc.expStatus, resp.StatusCode)
			}

			body := decodeBody(t, resp)
			if tc.expStatus == 200 {
				if body["token"] == nil || body["token"] == "" {
					t.Fatal("expected a session token")
				}
			} else if body["error"] == nil {
				t.Fatal("expected an error message")
			}
		})
	}
}
