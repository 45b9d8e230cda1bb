package nav_test

import (
	"reflect"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/nav"
	"github.com/dalemusser/chapterhub/internal/domain/models"
)

func hrefs(links []nav.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Href)
	}
	return out
}

func contains(links []nav.Link, href string) bool {
	for _, l := range links {
		if l.Href == href {
			return true
		}
	}
	return false
}

func TestResolve_StudentCoreStrip(t *testing.T) {
	vm := nav.Resolve(nav.Input{
		RawRoles:    []string{"student"},
		PrimaryRole: "student",
	})

	if vm.PrimaryRole != authz.RoleStudent {
		t.Fatalf("PrimaryRole = %q, want student", vm.PrimaryRole)
	}

	got := hrefs(vm.Core)
	want := []string{"/dashboard", "/classes", "/enrollments", "/quests", "/messages", "/notifications"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("core = %v, want %v", got, want)
	}
}

func TestResolve_CoreNeverExceedsLimit(t *testing.T) {
	for _, role := range []string{"student", "parent", "mentor", "instructor", "staff", "chapter_lead", "admin"} {
		vm := nav.Resolve(nav.Input{RawRoles: []string{role}, PrimaryRole: role})
		if len(vm.Core) > nav.DefaultCoreLimit {
			t.Errorf("%s: core has %d entries, limit %d", role, len(vm.Core), nav.DefaultCoreLimit)
		}
	}
}

func TestResolve_CriticalLinksAlwaysInCore(t *testing.T) {
	for _, role := range []string{"student", "parent", "mentor", "instructor", "staff", "chapter_lead", "admin"} {
		vm := nav.Resolve(nav.Input{RawRoles: []string{role}, PrimaryRole: role})
		if !contains(vm.Core, "/messages") {
			t.Errorf("%s: /messages missing from core %v", role, hrefs(vm.Core))
		}
		if !contains(vm.Core, "/notifications") {
			t.Errorf("%s: /notifications missing from core %v", role, hrefs(vm.Core))
		}
	}
}

func TestResolve_CriticalsEvictWhenStripIsTiny(t *testing.T) {
	vm := nav.Resolve(nav.Input{
		RawRoles:    []string{"student"},
		PrimaryRole: "student",
		CoreLimit:   2,
	})

	got := hrefs(vm.Core)
	want := []string{"/messages", "/notifications"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("core = %v, want criticals to evict everything else: %v", got, want)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	in := nav.Input{
		RawRoles:    []string{"instructor", "mentor"},
		PrimaryRole: "instructor",
		AwardTier:   models.AwardTierSilver,
	}

	a := nav.Resolve(in)
	b := nav.Resolve(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("Resolve must return identical output for identical input")
	}
}

func TestResolve_UnknownRolesDropped(t *testing.T) {
	vm := nav.Resolve(nav.Input{
		RawRoles:    []string{"student", "wizard"},
		PrimaryRole: "student",
	})

	if contains(vm.Visible, "/offerings") {
		t.Error("an unrecognized role must not grant role-gated links")
	}
}

func TestResolve_PrimaryFallsBackToHighestHeldRole(t *testing.T) {
	vm := nav.Resolve(nav.Input{
		RawRoles:    []string{"student", "instructor"},
		PrimaryRole: "wizard",
	})
	if vm.PrimaryRole != authz.RoleInstructor {
		t.Errorf("PrimaryRole = %q, want instructor fallback", vm.PrimaryRole)
	}

	vm = nav.Resolve(nav.Input{RawRoles: nil, PrimaryRole: ""})
	if vm.PrimaryRole != authz.RoleStudent {
		t.Errorf("PrimaryRole = %q, want student default", vm.PrimaryRole)
	}
}

func TestResolve_RoleGatedVisibility(t *testing.T) {
	student := nav.Resolve(nav.Input{RawRoles: []string{"student"}, PrimaryRole: "student"})
	if contains(student.Visible, "/offerings") || contains(student.Visible, "/reports") {
		t.Error("students must not see instructor or lead links")
	}

	instructor := nav.Resolve(nav.Input{RawRoles: []string{"instructor"}, PrimaryRole: "instructor"})
	if !contains(instructor.Visible, "/offerings") || !contains(instructor.Visible, "/training") {
		t.Errorf("instructor visible = %v, want teaching links", hrefs(instructor.Visible))
	}
	if contains(instructor.Visible, "/feature-gates") {
		t.Error("only admins may see the feature gate console")
	}
}

func TestResolve_AwardGating(t *testing.T) {
	none := nav.Resolve(nav.Input{RawRoles: []string{"student"}, PrimaryRole: "student"})
	if contains(none.Visible, "/awards") {
		t.Error("award links must be hidden without an award tier")
	}

	bronze := nav.Resolve(nav.Input{
		RawRoles:    []string{"student"},
		PrimaryRole: "student",
		AwardTier:   models.AwardTierBronze,
	})
	if !contains(bronze.Visible, "/awards") {
		t.Error("bronze tier must reveal award links")
	}

	admin := nav.Resolve(nav.Input{RawRoles: []string{"admin"}, PrimaryRole: "admin"})
	if !contains(admin.Visible, "/awards") {
		t.Error("admins see award-gated links without holding a tier")
	}
}

func TestResolve_MoreExcludesCoreAndFollowsGroupOrder(t *testing.T) {
	vm := nav.Resolve(nav.Input{RawRoles: []string{"instructor"}, PrimaryRole: "instructor"})

	inCore := make(map[string]bool)
	for _, l := range vm.Core {
		inCore[l.Href] = true
	}
	for _, section := range vm.More {
		for _, l := range section.Items {
			if inCore[l.Href] {
				t.Errorf("%s appears in both core and more", l.Href)
			}
		}
	}

	// Instructor ordering puts teaching content ahead of account settings.
	teachIdx, accountIdx := -1, -1
	for i, section := range vm.More {
		switch section.Label {
		case "Teach":
			teachIdx = i
		case "Account":
			accountIdx = i
		}
	}
	if accountIdx >= 0 && teachIdx >= 0 && teachIdx > accountIdx {
		t.Errorf("Teach section at %d after Account at %d for an instructor", teachIdx, accountIdx)
	}
}

func TestResolve_VisibleSortedByRoleGroupOrder(t *testing.T) {
	vm := nav.Resolve(nav.Input{RawRoles: []string{"mentor"}, PrimaryRole: "mentor"})

	// For a mentor, mentorship links sort ahead of the quest board group.
	mentorshipIdx, accountIdx := -1, -1
	for i, l := range vm.Visible {
		if l.Href == "/mentorship" {
			mentorshipIdx = i
		}
		if l.Href == "/settings" {
			accountIdx = i
		}
	}
	if mentorshipIdx == -1 || accountIdx == -1 {
		t.Fatalf("expected links missing from visible: %v", hrefs(vm.Visible))
	}
	if mentorshipIdx > accountIdx {
		t.Errorf("/mentorship at %d after /settings at %d for a mentor", mentorshipIdx, accountIdx)
	}
}
