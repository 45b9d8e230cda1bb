// Package nav builds the navigation model for a signed-in user: which links
// they can see, which few belong in the prominent "core" strip, and how the
// rest are grouped under "more".
//
// Resolution is a pure function of its input. It performs no I/O, keeps no
// state between calls, and returns identical output for identical input,
// so it is safe to run on every render.
package nav

import "github.com/dalemusser/chapterhub/internal/app/system/authz"

// Group is the section a link belongs to in the "more" menu.
type Group string

// The fixed set of navigation groups.
const (
	GroupHome         Group = "home"
	GroupLearn        Group = "learn"
	GroupTeach        Group = "teach"
	GroupMentorship   Group = "mentorship"
	GroupApplications Group = "applications"
	GroupReflections  Group = "reflections"
	GroupQuests       Group = "quests"
	GroupAwards       Group = "awards"
	GroupPathways     Group = "pathways"
	GroupChapter      Group = "chapter"
	GroupPeople       Group = "people"
	GroupReports      Group = "reports"
	GroupMessages     Group = "messages"
	GroupAccount      Group = "account"
)

// Label returns the display heading for a group.
func (g Group) Label() string {
	switch g {
	case GroupHome:
		return "Home"
	case GroupLearn:
		return "Learn"
	case GroupTeach:
		return "Teach"
	case GroupMentorship:
		return "Mentorship"
	case GroupApplications:
		return "Applications"
	case GroupReflections:
		return "Reflections"
	case GroupQuests:
		return "Quests"
	case GroupAwards:
		return "Awards"
	case GroupPathways:
		return "Pathways"
	case GroupChapter:
		return "Chapter"
	case GroupPeople:
		return "People"
	case GroupReports:
		return "Reports"
	case GroupMessages:
		return "Inbox"
	case GroupAccount:
		return "Account"
	default:
		return string(g)
	}
}

// Link is one entry in the static navigation catalog.
type Link struct {
	Href  string
	Label string
	Group Group

	// Roles restricts visibility; nil means visible to everyone.
	Roles []authz.Role

	// RequiresAward hides the link unless the user holds an award tier
	// (or is an admin, who sees award-gated items for support purposes).
	RequiresAward bool

	// CoreEligible marks links allowed into the core strip.
	CoreEligible bool

	// Priority orders links within a group; lower sorts first.
	Priority int
}

// Critical hrefs are always forced into the core strip when eligible,
// evicting a non-critical entry if the strip is full.
const (
	hrefMessages      = "/messages"
	hrefNotifications = "/notifications"
)

func isCriticalHref(href string) bool {
	return href == hrefMessages || href == hrefNotifications
}

var (
	instructorPlus = []authz.Role{authz.RoleInstructor, authz.RoleChapterLead, authz.RoleAdmin}
	leadPlus       = []authz.Role{authz.RoleChapterLead, authz.RoleAdmin}
	adminOnly      = []authz.Role{authz.RoleAdmin}
	mentorPlus     = []authz.Role{authz.RoleMentor, authz.RoleChapterLead, authz.RoleAdmin}
	staffPlus      = []authz.Role{authz.RoleStaff, authz.RoleAdmin}
	learners       = []authz.Role{authz.RoleStudent, authz.RoleParent}
)

// Catalog is the full static navigation catalog. Order here is not
// meaningful; Resolve sorts per user.
var Catalog = []Link{
	{Href: "/dashboard", Label: "Dashboard", Group: GroupHome, CoreEligible: true, Priority: 10},
	{Href: "/messages", Label: "Messages", Group: GroupMessages, CoreEligible: true, Priority: 10},
	{Href: "/notifications", Label: "Notifications", Group: GroupMessages, CoreEligible: true, Priority: 20},

	{Href: "/classes", Label: "Classes", Group: GroupLearn, CoreEligible: true, Priority: 10},
	{Href: "/enrollments", Label: "My Enrollments", Group: GroupLearn, Roles: learners, CoreEligible: true, Priority: 20},
	{Href: "/library", Label: "Library", Group: GroupLearn, Priority: 30},

	{Href: "/offerings", Label: "My Offerings", Group: GroupTeach, Roles: instructorPlus, CoreEligible: true, Priority: 10},
	{Href: "/training", Label: "Instructor Training", Group: GroupTeach, Roles: instructorPlus, CoreEligible: true, Priority: 20},
	{Href: "/templates", Label: "Class Templates", Group: GroupTeach, Roles: adminOnly, Priority: 30},

	{Href: "/mentorship", Label: "Mentorship", Group: GroupMentorship, Roles: mentorPlus, CoreEligible: true, Priority: 10},
	{Href: "/mentorship/requests", Label: "Mentor Requests", Group: GroupMentorship, Roles: mentorPlus, Priority: 20},

	{Href: "/applications", Label: "Applications", Group: GroupApplications, Roles: staffPlus, CoreEligible: true, Priority: 10},
	{Href: "/hiring", Label: "Hiring Pipeline", Group: GroupApplications, Roles: staffPlus, Priority: 20},

	{Href: "/reflections", Label: "Reflections", Group: GroupReflections, CoreEligible: true, Priority: 10},

	{Href: "/quests", Label: "Quest Board", Group: GroupQuests, Roles: learners, CoreEligible: true, Priority: 10},
	{Href: "/leaderboard", Label: "Leaderboard", Group: GroupQuests, Roles: learners, Priority: 20},

	{Href: "/awards", Label: "My Awards", Group: GroupAwards, RequiresAward: true, CoreEligible: true, Priority: 10},
	{Href: "/awards/showcase", Label: "Showcase", Group: GroupAwards, RequiresAward: true, Priority: 20},

	{Href: "/pathways", Label: "Pathways", Group: GroupPathways, CoreEligible: true, Priority: 10},
	{Href: "/certificates", Label: "Certificates", Group: GroupPathways, Priority: 20},

	{Href: "/chapter", Label: "My Chapter", Group: GroupChapter, CoreEligible: true, Priority: 10},
	{Href: "/chapter/events", Label: "Chapter Events", Group: GroupChapter, Priority: 20},
	{Href: "/chapters", Label: "All Chapters", Group: GroupChapter, Roles: adminOnly, Priority: 30},

	{Href: "/people/students", Label: "Students", Group: GroupPeople, Roles: leadPlus, CoreEligible: true, Priority: 10},
	{Href: "/people/instructors", Label: "Instructors", Group: GroupPeople, Roles: leadPlus, Priority: 20},
	{Href: "/people/mentors", Label: "Mentors", Group: GroupPeople, Roles: leadPlus, Priority: 30},
	{Href: "/system-users", Label: "System Users", Group: GroupPeople, Roles: adminOnly, Priority: 40},

	{Href: "/reports", Label: "Reports", Group: GroupReports, Roles: leadPlus, CoreEligible: true, Priority: 10},
	{Href: "/feature-gates", Label: "Feature Gates", Group: GroupReports, Roles: adminOnly, Priority: 20},

	{Href: "/profile", Label: "Profile", Group: GroupAccount, Priority: 10},
	{Href: "/settings", Label: "Settings", Group: GroupAccount, Priority: 20},
}
