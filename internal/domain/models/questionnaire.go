package models

import (
	"time"

	"github.com/nytron88/gdd-module-types/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// QuestionnaireResponse holds a project's intake answers. Every answer is
// optional because the questionnaire is filled in incrementally.
type QuestionnaireResponse struct {
	ID               string              `json:"id" db:"id"`
	ProjectID        string              `json:"project_id" db:"project_id"`
	Status           QuestionnaireStatus `json:"status" db:"status"`
	IssueStatement   *string             `json:"issue_statement,omitempty" db:"issue_statement"`
	WhoIsAffected    *string             `json:"who_is_affected,omitempty" db:"who_is_affected"`
	GoalsOutcomes    *string             `json:"goals_outcomes,omitempty" db:"goals_outcomes"`
	NeedsAddressed   *string             `json:"needs_addressed,omitempty" db:"needs_addressed"`
	Partners         []string            `json:"partners,omitempty" db:"partners"`
	Offerings        *string             `json:"offerings,omitempty" db:"offerings"`
	Resources        *string             `json:"resources,omitempty" db:"resources"`
	IncomeModel      *string             `json:"income_model,omitempty" db:"income_model"`
	CostsFunding     *string             `json:"costs_funding,omitempty" db:"costs_funding"`
	Timeline         *string             `json:"timeline,omitempty" db:"timeline"`
	BudgetAmount     *float64            `json:"budget_amount,omitempty" db:"budget_amount"`
	KeyMilestones    []string            `json:"key_milestones,omitempty" db:"key_milestones"`
	RisksMitigations *string             `json:"risks_mitigations,omitempty" db:"risks_mitigations"`
	TargetPopulation *string             `json:"target_population,omitempty" db:"target_population"`
	Stakeholders     []string            `json:"stakeholders,omitempty" db:"stakeholders"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" db:"updated_at"`
}

// Touch advances UpdatedAt; call on every successful mutation
func (q *QuestionnaireResponse) Touch() {
	q.UpdatedAt = NextTimestamp(q.UpdatedAt)
}

// IsApproved reports whether the questionnaire has been signed off
func (q *QuestionnaireResponse) IsApproved() bool {
	return q.Status == QuestionnaireStatusApproved
}

// QuestionnaireAnswers is a partial update: nil fields are left unchanged.
type QuestionnaireAnswers struct {
	IssueStatement   *string  `json:"issue_statement,omitempty" yaml:"issue_statement,omitempty"`
	WhoIsAffected    *string  `json:"who_is_affected,omitempty" yaml:"who_is_affected,omitempty"`
	GoalsOutcomes    *string  `json:"goals_outcomes,omitempty" yaml:"goals_outcomes,omitempty"`
	NeedsAddressed   *string  `json:"needs_addressed,omitempty" yaml:"needs_addressed,omitempty"`
	Partners         []string `json:"partners,omitempty" yaml:"partners,omitempty"`
	Offerings        *string  `json:"offerings,omitempty" yaml:"offerings,omitempty"`
	Resources        *string  `json:"resources,omitempty" yaml:"resources,omitempty"`
	IncomeModel      *string  `json:"income_model,omitempty" yaml:"income_model,omitempty"`
	CostsFunding     *string  `json:"costs_funding,omitempty" yaml:"costs_funding,omitempty"`
	Timeline         *string  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	BudgetAmount     *float64 `json:"budget_amount,omitempty" yaml:"budget_amount,omitempty"`
	KeyMilestones    []string `json:"key_milestones,omitempty" yaml:"key_milestones,omitempty"`
	RisksMitigations *string  `json:"risks_mitigations,omitempty" yaml:"risks_mitigations,omitempty"`
	TargetPopulation *string  `json:"target_population,omitempty" yaml:"target_population,omitempty"`
	Stakeholders     []string `json:"stakeholders,omitempty" yaml:"stakeholders,omitempty"`
}

// Apply copies every non-nil answer onto q. It reports whether anything was set.
func (q *QuestionnaireResponse) Apply(a *QuestionnaireAnswers) bool {
	changed := false
	setString := func(dst **string, src *string) {
		if v := optionalString(src); v != nil {
			*dst = v
			changed = true
		}
	}
	setList := func(dst *[]string, src []string) {
		if v := trimmed(src); v != nil {
			*dst = v
			changed = true
		}
	}

	setString(&q.IssueStatement, a.IssueStatement)
	setString(&q.WhoIsAffected, a.WhoIsAffected)
	setString(&q.GoalsOutcomes, a.GoalsOutcomes)
	setString(&q.NeedsAddressed, a.NeedsAddressed)
	setList(&q.Partners, a.Partners)
	setString(&q.Offerings, a.Offerings)
	setString(&q.Resources, a.Resources)
	setString(&q.IncomeModel, a.IncomeModel)
	setString(&q.CostsFunding, a.CostsFunding)
	setString(&q.Timeline, a.Timeline)
	if a.BudgetAmount != nil {
		v := *a.BudgetAmount
		q.BudgetAmount = &v
		changed = true
	}
	setList(&q.KeyMilestones, a.KeyMilestones)
	setString(&q.RisksMitigations, a.RisksMitigations)
	setString(&q.TargetPopulation, a.TargetPopulation)
	setList(&q.Stakeholders, a.Stakeholders)

	return changed
}

func (q *QuestionnaireResponse) Validate() error {
	text := []validation.Rule{notBlank, validation.Length(0, config.MaxAnswerLength)}
	list := []validation.Rule{validation.Each(validation.Required, notBlank, validation.Length(1, config.MaxAnswerLength))}

	return toDomainError(validation.ValidateStruct(q,
		validation.Field(&q.ID, validation.Required, is.UUID),
		validation.Field(&q.ProjectID, validation.Required, is.UUID),
		validation.Field(&q.Status, validation.Required, validation.In(questionnaireStatusValues()...).Error("must be one of draft, approved")),
		validation.Field(&q.IssueStatement, text...),
		validation.Field(&q.WhoIsAffected, text...),
		validation.Field(&q.GoalsOutcomes, text...),
		validation.Field(&q.NeedsAddressed, text...),
		validation.Field(&q.Partners, list...),
		validation.Field(&q.Offerings, text...),
		validation.Field(&q.Resources, text...),
		validation.Field(&q.IncomeModel, text...),
		validation.Field(&q.CostsFunding, text...),
		validation.Field(&q.Timeline, text...),
		validation.Field(&q.BudgetAmount, finite, validation.Min(0.0)),
		validation.Field(&q.KeyMilestones, list...),
		validation.Field(&q.RisksMitigations, text...),
		validation.Field(&q.TargetPopulation, text...),
		validation.Field(&q.Stakeholders, list...),
		validation.Field(&q.CreatedAt, validation.Required),
		validation.Field(&q.UpdatedAt, validation.Required, validation.By(notBefore(q.CreatedAt))),
	))
}
