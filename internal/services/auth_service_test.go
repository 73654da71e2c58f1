package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse_backend/pkg/utils"
)

const testSecret = "test-secret-0123456789"

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	team := NewTeamService(env.store, env.team)
	member, err := team.CreateMember(CreateMemberRequest{Name: "John Smith", Email: "John.Smith@Company.com", Role: "admin", Password: strPtr("warehouse-pass")})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	if member.Email != "john.smith@company.com" {
		t.Errorf("email not normalised: %s", member.Email)
	}
	if _, err := team.CreateMember(CreateMemberRequest{Name: "No Login", Email: "nologin@company.com"}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	auth := NewAuthService(env.store, env.team, testSecret, time.Hour)
	resp, err := auth.Login(LoginRequest{Email: "JOHN.SMITH@company.com", Password: "warehouse-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := utils.ValidateToken([]byte(testSecret), resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.MemberID != member.ID || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}

	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"wrong password", LoginRequest{Email: "john.smith@company.com", Password: "nope"}, ErrInvalidCredentials},
		{"unknown email", LoginRequest{Email: "ghost@company.com", Password: "warehouse-pass"}, ErrInvalidCredentials},
		{"member without password", LoginRequest{Email: "nologin@company.com", Password: "anything"}, ErrInvalidCredentials},
		{"malformed email", LoginRequest{Email: "john", Password: "x"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := auth.Login(tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("Login = %v, want %v", err, tt.want)
			}
		})
	}

	profile, err := auth.GetProfile(member.ID)
	if err != nil || profile.Name != "John Smith" {
		t.Fatalf("GetProfile = %+v, %v", profile, err)
	}
}

func TestSnapshotServiceDisabled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSnapshotService(env.store, nil, nil)
	if svc.Enabled() {
		t.Fatal("snapshot service enabled without a database")
	}
	if _, err := svc.SaveSnapshot(context.Background()); !errors.Is(err, ErrPersistenceDisabled) {
		t.Fatalf("SaveSnapshot = %v", err)
	}
	if _, err := svc.RestoreLatest(context.Background()); !errors.Is(err, ErrPersistenceDisabled) {
		t.Fatalf("RestoreLatest = %v", err)
	}
}
