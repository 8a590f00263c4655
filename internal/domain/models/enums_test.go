package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ProjectStatus
		allowed  bool
	}{
		{ProjectStatusDraft, ProjectStatusInProgress, true},
		{ProjectStatusDraft, ProjectStatusReady, false},
		{ProjectStatusDraft, ProjectStatusArchived, true},
		{ProjectStatusInProgress, ProjectStatusReady, true},
		{ProjectStatusInProgress, ProjectStatusDraft, false},
		{ProjectStatusInProgress, ProjectStatusArchived, true},
		{ProjectStatusReady, ProjectStatusArchived, true},
		{ProjectStatusReady, ProjectStatusInProgress, false},
		{ProjectStatusArchived, ProjectStatusDraft, false},
		{ProjectStatusArchived, ProjectStatusInProgress, false},
		{ProjectStatusArchived, ProjectStatusArchived, true},
		{ProjectStatusReady, ProjectStatusReady, true},
		{ProjectStatusDraft, "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	for _, i := range Interests {
		assert.True(t, i.IsValid(), i)
	}
	assert.False(t, Interest("sports").IsValid())
	assert.False(t, Interest("Health").IsValid())

	for _, s := range ProjectStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ProjectStatus("cancelled").IsValid())

	assert.True(t, QuestionnaireStatusDraft.IsValid())
	assert.True(t, QuestionnaireStatusApproved.IsValid())
	assert.False(t, QuestionnaireStatus("submitted").IsValid())

	for _, r := range Roles {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("admin").IsValid())
	assert.False(t, Role("bot").IsValid())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"assistant", RoleAssistant, false},
		{"system", RoleSystem, false},
		{"bot", RoleAssistant, false},
		{"admin", RoleAssistant, false},
		{" Bot ", RoleAssistant, false},
		{"moderator", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
