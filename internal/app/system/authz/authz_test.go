package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, name, id, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a user")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("unexpected values: %q %q %v", role, name, id)
	}
}

func TestUserCtx_MalformedID_FailsClosed(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-hex", Role: "admin"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed ID")
	}
	if authz.IsAdmin(req) {
		t.Error("malformed ID must not be treated as admin")
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	oid := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: oid.Hex(), Name: "Ann", Role: "Admin"})

	role, name, id, ok := authz.UserCtx(req)
	if !ok || role != "admin" || name != "Ann" || id != oid {
		t.Errorf("got %q %q %v %v", role, name, id, ok)
	}
	if !authz.IsAdmin(req) {
		t.Error("expected IsAdmin")
	}
}

func TestCanModify(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	sameAsOwner, _ := primitive.ObjectIDFromHex(owner.Hex())

	tests := []struct {
		name      string
		owner     primitive.ObjectID
		requester primitive.ObjectID
		role      string
		want      bool
	}{
		{name: "owner", owner: owner, requester: owner, role: "user", want: true},
		{name: "owner parsed from hex", owner: owner, requester: sameAsOwner, role: "user", want: true},
		{name: "other user", owner: owner, requester: other, role: "user", want: false},
		{name: "publisher not owner", owner: owner, requester: other, role: "publisher", want: false},
		{name: "admin not owner", owner: owner, requester: other, role: "admin", want: true},
		{name: "admin mixed case", owner: owner, requester: other, role: "Admin", want: true},
		{name: "nil owner never matches", owner: primitive.NilObjectID, requester: primitive.NilObjectID, role: "user", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authz.CanModify(tt.owner, tt.requester, tt.role); got != tt.want {
				t.Errorf("CanModify = %v, want %v", got, tt.want)
			}
		})
	}
}
