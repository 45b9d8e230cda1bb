// internal/app/system/nav/resolve.go
package nav

import (
	"sort"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
)

// DefaultCoreLimit is the core strip size used when Input.CoreLimit is zero.
const DefaultCoreLimit = 6

// Input carries everything Resolve needs about the current user.
// RawRoles and PrimaryRole come straight from the session; unrecognized
// role strings are dropped, not errored, since role lists may originate
// from stale sessions during a role migration.
type Input struct {
	RawRoles    []string
	PrimaryRole string
	AwardTier   string
	CurrentPath string
	CoreLimit   int
}

// Section is one heading with its links in the "more" menu.
type Section struct {
	Label string
	Items []Link
}

// ViewModel is the resolved navigation for one user.
type ViewModel struct {
	PrimaryRole authz.Role
	Visible     []Link
	Core        []Link
	More        []Section
}

// Resolve computes the navigation model for a user.
func Resolve(in Input) ViewModel {
	roles := authz.NormalizeRoles(in.RawRoles)
	primary := authz.PrimaryRole(in.PrimaryRole, roles)

	limit := in.CoreLimit
	if limit <= 0 {
		limit = DefaultCoreLimit
	}

	visible := visibleLinks(roles, in.AwardTier)

	rank := make(map[Group]int, 14)
	for i, g := range groupOrder(primary) {
		rank[g] = i
	}

	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if rank[a.Group] != rank[b.Group] {
			return rank[a.Group] < rank[b.Group]
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Label < b.Label
	})

	core := buildCore(primary, visible, limit)

	return ViewModel{
		PrimaryRole: primary,
		Visible:     visible,
		Core:        core,
		More:        buildMore(visible, core, rank),
	}
}

// visibleLinks filters the catalog down to what this user may see.
func visibleLinks(roles []authz.Role, awardTier string) []Link {
	isAdmin := authz.HasRole(roles, authz.RoleAdmin)
	hasAward := false
	switch awardTier {
	case models.AwardTierBronze, models.AwardTierSilver, models.AwardTierGold:
		hasAward = true
	}

	out := make([]Link, 0, len(Catalog))
	for _, link := range Catalog {
		if link.RequiresAward && !hasAward && !isAdmin {
			// Admins see award-gated items regardless, for support purposes.
			continue
		}
		if len(link.Roles) > 0 && !roleIntersects(roles, link.Roles) {
			continue
		}
		out = append(out, link)
	}
	return out
}

func roleIntersects(have, want []authz.Role) bool {
	for _, w := range want {
		if authz.HasRole(have, w) {
			return true
		}
	}
	return false
}

// buildCore selects the bounded core strip. Preferred hrefs are taken in
// order while slots remain; the critical hrefs (messages, notifications)
// are then forced in, evicting the last non-critical entry when the strip
// is already full.
func buildCore(primary authz.Role, visible []Link, limit int) []Link {
	eligible := make(map[string]Link, len(visible))
	for _, link := range visible {
		if link.CoreEligible {
			eligible[link.Href] = link
		}
	}

	core := make([]Link, 0, limit)
	inCore := make(map[string]bool, limit)

	add := func(href string) {
		link, ok := eligible[href]
		if !ok || inCore[href] {
			return
		}
		if len(core) < limit {
			core = append(core, link)
			inCore[href] = true
			return
		}
		if !isCriticalHref(href) {
			return
		}
		// Full strip: evict the last non-critical entry to make room.
		for i := len(core) - 1; i >= 0; i-- {
			if !isCriticalHref(core[i].Href) {
				delete(inCore, core[i].Href)
				core = append(core[:i], core[i+1:]...)
				core = append(core, link)
				inCore[href] = true
				return
			}
		}
		// Everything in core is critical already; drop the candidate.
	}

	for _, href := range corePreferred(primary) {
		add(href)
	}
	add(hrefMessages)
	add(hrefNotifications)

	return core
}

// buildMore groups every visible link not in core, with groups ordered by
// the same per-role rank used for sorting.
func buildMore(visible []Link, core []Link, rank map[Group]int) []Section {
	inCore := make(map[string]bool, len(core))
	for _, link := range core {
		inCore[link.Href] = true
	}

	byGroup := make(map[Group][]Link)
	for _, link := range visible {
		if inCore[link.Href] {
			continue
		}
		byGroup[link.Group] = append(byGroup[link.Group], link)
	}

	groups := make([]Group, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return rank[groups[i]] < rank[groups[j]] })

	sections := make([]Section, 0, len(groups))
	for _, g := range groups {
		sections = append(sections, Section{Label: g.Label(), Items: byGroup[g]})
	}
	return sections
}
