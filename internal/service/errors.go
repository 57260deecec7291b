package service

import "errors"

// Domain errors returned by services. Handlers map these onto HTTP statuses;
// anything else surfaces as an internal error.
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrWeakPassword       = errors.New("password must contain at least one letter and one digit")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrMemberNotFound  = errors.New("member not found")

	ErrNotMember    = errors.New("you are not a member of this project")
	ErrNotOwner     = errors.New("only the project owner can perform this action")
	ErrNotTaskOwner = errors.New("only the task owner or a project owner can delete this task")

	ErrAlreadyMember     = errors.New("you are already a member of this project")
	ErrCannotRemoveOwner = errors.New("cannot remove the project owner")

	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidParent       = errors.New("parent task does not belong to this project")
	ErrInvalidOwner        = errors.New("assigned user is not a member of this project")
	ErrDeadlineConflict    = errors.New("cannot set project deadline earlier than existing task deadlines")
	ErrIncompleteTasks     = errors.New("cannot mark project as completed while it has uncompleted tasks")
	ErrTaskDeadlineTooLate = errors.New("task deadline cannot be later than the project deadline")
)
