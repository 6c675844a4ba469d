package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionFromIdentity_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		user     map[string]any
		employee map[string]any
		want     Session
	}{
		{
			name: "canonical casing",
			user: map[string]any{
				"UserID":  "u-1",
				"Name":    "Anan",
				"Email":   "a@x.com",
				"Picture": "https://pic",
			},
			employee: map[string]any{"EmployeeCode": "E01"},
			want: Session{
				ID:           "u-1",
				Name:         "Anan",
				Email:        "a@x.com",
				AvatarURL:    "https://pic",
				EmployeeCode: "E01",
			},
		},
		{
			name: "lowercase legacy casing",
			user: map[string]any{
				"sub":       "s-9",
				"name":      "Bee",
				"email":     "b@x.com",
				"avatarUrl": "https://av",
			},
			employee: map[string]any{"employee_code": "E02"},
			want: Session{
				ID:           "s-9",
				Name:         "Bee",
				Email:        "b@x.com",
				AvatarURL:    "https://av",
				EmployeeCode: "E02",
			},
		},
		{
			name: "email stands in for id and name",
			user: map[string]any{"Email": "c@x.com"},
			want: Session{
				ID:    "c@x.com",
				Name:  "c@x.com",
				Email: "c@x.com",
			},
		},
		{
			name: "empty input yields defaults",
			user: map[string]any{},
			want: Session{ID: "unknown", Name: "User"},
		},
		{
			name: "non-string values are skipped",
			user: map[string]any{"UserID": 42, "id": "u-2", "Name": "Nok"},
			want: Session{ID: "u-2", Name: "Nok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SessionFromIdentity(tt.user, tt.employee))
		})
	}
}
