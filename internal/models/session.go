package models

// Session is the locally cached authenticated user profile. It is created on
// successful credential verification, persisted across restarts, and cleared
// on explicit logout. The backend holds no server-side session.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
}

// SessionFromIdentity normalizes the loosely-cased user and employee objects
// returned by the identity endpoint into a Session. The upstream system has
// shipped several field-name casings over time, so each field is resolved
// through an explicit precedence list with a fallback default. The mapping is
// total: any input yields a usable Session.
//
// Precedence:
//
//	id:       UserID > id > sub > Email > email > "unknown"
//	name:     Name > FullName > name > Email > email > "User"
//	email:    Email > email > ""
//	avatar:   Picture > picture > avatarUrl > Avatar > ImageURL > PhotoURL > ""
//	employee: EmployeeCode > employee_code > ""
func SessionFromIdentity(user map[string]any, employee map[string]any) Session {
	return Session{
		ID:           firstString(user, []string{"UserID", "id", "sub", "Email", "email"}, "unknown"),
		Name:         firstString(user, []string{"Name", "FullName", "name", "Email", "email"}, "User"),
		Email:        firstString(user, []string{"Email", "email"}, ""),
		AvatarURL:    firstString(user, []string{"Picture", "picture", "avatarUrl", "Avatar", "ImageURL", "PhotoURL"}, ""),
		EmployeeCode: firstString(employee, []string{"EmployeeCode", "employee_code"}, ""),
	}
}

// firstString returns the first non-empty string value of keys in m, or fallback.
func firstString(m map[string]any, keys []string, fallback string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}
