package controllers

import (
	"database/sql/driver"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetProfileLoadsRoleByRoleID(t *testing.T) {
	state := withScriptedDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `users` WHERE user_id = \\?"),
			columns: []string{"user_id", "first_name", "last_name", "email", "role_id"},
			rows: [][]driver.Value{
				{int64(7), "Vera", "Ivanova", "vera@example.com", int64(2)},
			},
		},
		{
			// The role lookup must bind the user's role_id, not the user id.
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `roles` WHERE `roles`\\.`role_id`"),
			args:    []driver.Value{int64(2)},
			columns: []string{"role_id", "role"},
			rows: [][]driver.Value{
				{int64(2), "verifier"},
			},
		},
	})

	recorder := invokeHandler(t, GetProfile, "", 7, gin.H{})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"role":"verifier"`) {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangePasswordEnforcesMinimumLength(t *testing.T) {
	state := withScriptedDB(t, nil)

	recorder := invokeHandler(t, ChangePassword, "", 7, gin.H{
		"current_password": "old-secret",
		"new_password":     "short",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Password must be at least 8 characters long") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("expected validation before any lookup: %v", err)
	}
}
