package service

import "sekolahku_backend/internals/constants"

// CanAssignRole: owner boleh membuat admin/teacher/student,
// admin instansi hanya teacher/student.
func CanAssignRole(actorRole, target string) bool {
	switch actorRole {
	case constants.RoleOwner:
		return target == constants.RoleAdmin || target == constants.RoleTeacher || target == constants.RoleStudent
	case constants.RoleAdmin:
		for _, r := range constants.InstansiAssignableRoles {
			if r == target {
				return true
			}
		}
	}
	return false
}
