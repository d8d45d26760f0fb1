package controltower

import "testing"

func TestVisibleSectionsPerRole(t *testing.T) {
	cases := []struct {
		role RoleCode
		want int
	}{
		{RoleAdministrator, 6},
		{RoleOperationsManager, 5},
		{RoleVendorUser, 3},
		{RoleAnalyst, 2},
	}

	for _, tc := range cases {
		got := VisibleSections(tc.role)
		if len(got) != tc.want {
			t.Fatalf("role %s: expected %d sections, got %d", tc.role, tc.want, len(got))
		}
		if got[0] != NavOverview {
			t.Fatalf("role %s: expected overview first, got %s", tc.role, got[0])
		}
	}
}

func TestVisibleSectionsUnknownRole(t *testing.T) {
	got := VisibleSections("janitor")
	if len(got) != 1 || got[0] != NavOverview {
		t.Fatalf("expected overview only for unknown role, got %v", got)
	}
}

func TestVisibleSectionsReturnsCopy(t *testing.T) {
	first := VisibleSections(RoleAnalyst)
	first[0] = NavAdministration

	second := VisibleSections(RoleAnalyst)
	if second[0] != NavOverview {
		t.Fatal("mutating the returned slice must not affect the registry")
	}
}

func TestKnownRole(t *testing.T) {
	if !KnownRole(RoleAdministrator) {
		t.Fatal("administrator should be known")
	}
	if KnownRole("janitor") {
		t.Fatal("janitor should not be known")
	}
}

func TestOnlyAdministratorSeesAdministration(t *testing.T) {
	for role := range navByRole {
		sections := VisibleSections(role)
		hasAdmin := false
		for _, s := range sections {
			if s == NavAdministration {
				hasAdmin = true
			}
		}
		if hasAdmin != (role == RoleAdministrator) {
			t.Fatalf("role %s: administration visibility wrong", role)
		}
	}
}
