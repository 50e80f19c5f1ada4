package service

import (
	"context"
	"errors"
	"testing"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
)

func TestDeleteStudent(t *testing.T) {
	student := model.User{Name: "s", Role: model.Student}
	student.ID = 1
	admin := model.User{Name: "a", Role: model.Admin}
	admin.ID = 2

	tests := []struct {
		name    string
		id      uint
		wantErr error
	}{
		{"student", 1, nil},
		{"admin refused", 2, util.ErrNotStudent},
		{"missing", 3, util.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newStubUsers(student, admin)
			inv := &countingInvalidator{}
			svc := NewUserService(users, inv)

			err := svc.DeleteStudent(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if len(users.deleted) != 1 || inv.calls != 1 {
					t.Errorf("deleted = %v, invalidations = %d", users.deleted, inv.calls)
				}
				return
			}
			if len(users.deleted) != 0 {
				t.Errorf("nothing should be deleted, got %v", users.deleted)
			}
		})
	}
}

func TestListStudentsOnlyReturnsStudents(t *testing.T) {
	student := model.User{Name: "s", Role: model.Student}
	student.ID = 1
	admin := model.User{Name: "a", Role: model.Admin}
	admin.ID = 2

	got, err := NewUserService(newStubUsers(student, admin), &countingInvalidator{}).ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(got) != 1 || got[0].Role != model.Student {
		t.Errorf("students = %+v", got)
	}
}
