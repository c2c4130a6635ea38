package handler

import (
	"testing"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

func TestMergeUsersDefaultsToNonAdmin(t *testing.T) {
	users := []model.User{{ID: 1, Email: "a@x.com"}, {ID: 2, Email: "b@x.com"}}
	got := mergeUsers(users, nil)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, u := range got {
		if u.IsAdmin {
			t.Fatalf("user %d admin without a profile row", u.ID)
		}
	}
}

func TestMergeUsersAppliesProfileFlags(t *testing.T) {
	users := []model.User{{ID: 1, Email: "a@x.com"}, {ID: 2, Email: "b@x.com"}, {ID: 3, Email: "c@x.com"}}
	profiles := []model.Profile{{UserID: 2, IsAdmin: true}, {UserID: 3, IsAdmin: false}}
	got := mergeUsers(users, profiles)

	want := map[uint64]bool{1: false, 2: true, 3: false}
	for _, u := range got {
		if u.IsAdmin != want[u.ID] {
			t.Fatalf("user %d: is_admin = %v, want %v", u.ID, u.IsAdmin, want[u.ID])
		}
	}
}

func TestMergeUsersIgnoresOrphanProfiles(t *testing.T) {
	users := []model.User{{ID: 1, Email: "a@x.com"}}
	profiles := []model.Profile{{UserID: 99, IsAdmin: true}}
	got := mergeUsers(users, profiles)
	if len(got) != 1 || got[0].ID != 1 || got[0].IsAdmin {
		t.Fatalf("unexpected merge: %+v", got)
	}
}
