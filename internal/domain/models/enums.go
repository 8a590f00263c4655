package models

import (
	"fmt"
	"strings"
)

// Interest is a topic tag a user can follow
type Interest string

const (
	InterestHealth      Interest = "health"
	InterestEnvironment Interest = "environment"
	InterestSocial      Interest = "social"
	InterestEconomic    Interest = "economic"
)

// Interests lists every valid Interest
var Interests = []Interest{InterestHealth, InterestEnvironment, InterestSocial, InterestEconomic}

func (i Interest) IsValid() bool {
	for _, v := range Interests {
		if i == v {
			return true
		}
	}
	return false
}

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusReady      ProjectStatus = "ready"
	ProjectStatusArchived   ProjectStatus = "archived"
)

// ProjectStatuses lists every valid ProjectStatus
var ProjectStatuses = []ProjectStatus{
	ProjectStatusDraft,
	ProjectStatusInProgress,
	ProjectStatusReady,
	ProjectStatusArchived,
}

func (s ProjectStatus) IsValid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether a project may move from s to next.
// draft -> in_progress -> ready, and anything not yet archived -> archived.
// Setting the current status again is a no-op and always allowed.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case ProjectStatusDraft:
		return next == ProjectStatusInProgress || next == ProjectStatusArchived
	case ProjectStatusInProgress:
		return next == ProjectStatusReady || next == ProjectStatusArchived
	case ProjectStatusReady:
		return next == ProjectStatusArchived
	default:
		return false
	}
}

// QuestionnaireStatus is the review state of a questionnaire response
type QuestionnaireStatus string

const (
	QuestionnaireStatusDraft    QuestionnaireStatus = "draft"
	QuestionnaireStatusApproved QuestionnaireStatus = "approved"
)

// QuestionnaireStatuses lists every valid QuestionnaireStatus
var QuestionnaireStatuses = []QuestionnaireStatus{QuestionnaireStatusDraft, QuestionnaireStatusApproved}

func (s QuestionnaireStatus) IsValid() bool {
	return s == QuestionnaireStatusDraft || s == QuestionnaireStatusApproved
}

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"      // human-authored
	RoleAssistant Role = "assistant" // generated reply
	RoleSystem    Role = "system"    // notices emitted by the application itself
)

// Roles lists every valid Role
var Roles = []Role{RoleUser, RoleAssistant, RoleSystem}

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant || r == RoleSystem
}

// ParseRole parses a role name. The older record shapes used "admin" and "bot"
// for the non-human side of a conversation; both map to RoleAssistant.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "assistant", "admin", "bot":
		return RoleAssistant, nil
	case "system":
		return RoleSystem, nil
	default:
		return "", fmt.Errorf("unknown message role %q", s)
	}
}

func interestValues() []interface{} {
	out := make([]interface{}, len(Interests))
	for i, v := range Interests {
		out[i] = v
	}
	return out
}

func projectStatusValues() []interface{} {
	out := make([]interface{}, len(ProjectStatuses))
	for i, v := range ProjectStatuses {
		out[i] = v
	}
	return out
}

func questionnaireStatusValues() []interface{} {
	out := make([]interface{}, len(QuestionnaireStatuses))
	for i, v := range QuestionnaireStatuses {
		out[i] = v
	}
	return out
}

func roleValues() []interface{} {
	out := make([]interface{}, len(Roles))
	for i, v := range Roles {
		out[i] = v
	}
	return out
}
