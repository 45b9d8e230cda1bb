// internal/app/system/nav/groups.go
package nav

import "github.com/dalemusser/chapterhub/internal/app/system/authz"

// groupOrder returns the total order over all fourteen groups for a primary
// role. Every arm must list every group exactly once; the ordering is what
// shifts navigation emphasis per role even though the catalog is shared.
func groupOrder(primary authz.Role) [14]Group {
	switch primary {
	case authz.RoleAdmin:
		return [14]Group{
			GroupHome, GroupReports, GroupPeople, GroupApplications,
			GroupChapter, GroupTeach, GroupLearn, GroupMentorship,
			GroupPathways, GroupQuests, GroupAwards, GroupReflections,
			GroupMessages, GroupAccount,
		}
	case authz.RoleChapterLead:
		return [14]Group{
			GroupHome, GroupChapter, GroupPeople, GroupReports,
			GroupTeach, GroupMentorship, GroupLearn, GroupApplications,
			GroupPathways, GroupReflections, GroupQuests, GroupAwards,
			GroupMessages, GroupAccount,
		}
	case authz.RoleInstructor:
		return [14]Group{
			GroupHome, GroupTeach, GroupLearn, GroupChapter,
			GroupMentorship, GroupReflections, GroupPathways, GroupReports,
			GroupApplications, GroupQuests, GroupAwards, GroupMessages,
			GroupPeople, GroupAccount,
		}
	case authz.RoleMentor:
		return [14]Group{
			GroupHome, GroupMentorship, GroupReflections, GroupLearn,
			GroupChapter, GroupPathways, GroupQuests, GroupAwards,
			GroupTeach, GroupApplications, GroupPeople, GroupReports,
			GroupMessages, GroupAccount,
		}
	case authz.RoleStaff:
		return [14]Group{
			GroupHome, GroupApplications, GroupReports, GroupPeople,
			GroupChapter, GroupLearn, GroupTeach, GroupMentorship,
			GroupPathways, GroupReflections, GroupQuests, GroupAwards,
			GroupMessages, GroupAccount,
		}
	case authz.RoleParent:
		return [14]Group{
			GroupHome, GroupLearn, GroupChapter, GroupReflections,
			GroupPathways, GroupQuests, GroupAwards, GroupMentorship,
			GroupMessages, GroupTeach, GroupApplications, GroupPeople,
			GroupReports, GroupAccount,
		}
	default: // student
		return [14]Group{
			GroupHome, GroupLearn, GroupQuests, GroupPathways,
			GroupReflections, GroupAwards, GroupChapter, GroupMentorship,
			GroupMessages, GroupTeach, GroupApplications, GroupPeople,
			GroupReports, GroupAccount,
		}
	}
}

// corePreferred returns the ordered hrefs a primary role wants in its core
// strip. Hrefs not visible (or not core-eligible) for the user are skipped
// silently at resolve time.
func corePreferred(primary authz.Role) []string {
	switch primary {
	case authz.RoleAdmin:
		return []string{
			"/dashboard", "/reports", "/feature-gates", "/system-users",
			"/applications", "/classes", "/messages", "/notifications",
		}
	case authz.RoleChapterLead:
		return []string{
			"/dashboard", "/chapter", "/people/students", "/reports",
			"/offerings", "/messages", "/notifications",
		}
	case authz.RoleInstructor:
		return []string{
			"/dashboard", "/offerings", "/training", "/classes",
			"/reflections", "/messages", "/notifications",
		}
	case authz.RoleMentor:
		return []string{
			"/dashboard", "/mentorship", "/reflections", "/classes",
			"/messages", "/notifications",
		}
	case authz.RoleStaff:
		return []string{
			"/dashboard", "/applications", "/reports", "/classes",
			"/messages", "/notifications",
		}
	case authz.RoleParent:
		return []string{
			"/dashboard", "/classes", "/enrollments", "/chapter",
			"/messages", "/notifications",
		}
	default: // student
		return []string{
			"/dashboard", "/classes", "/enrollments", "/quests",
			"/pathways", "/messages", "/notifications",
		}
	}
}
