package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CategoryRuleEditable represents all user configurable parameters
type CategoryRuleEditable struct {
	Priority uint   `json:"priority" example:"3"`       // Rules with a lower priority are evaluated first
	Match    string `json:"match" example:"*coffee*"`   // Case-insensitive pattern for the description, "*" matches any text
	Label    string `json:"label" example:"Eating out"` // Category label for matching expenses
}

func (editable CategoryRuleEditable) model() models.CategoryRule {
	return models.CategoryRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		Label:    editable.Label,
	}
}

type CategoryRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/category-rules/95685c82-53c6-455d-b235-f49960b73b21"` // The category rule itself
}

type CategoryRule struct {
	models.DefaultModel
	CategoryRuleEditable
	Links CategoryRuleLinks `json:"links"`
}

func newCategoryRule(c *gin.Context, model models.CategoryRule) CategoryRule {
	return CategoryRule{
		DefaultModel: model.DefaultModel,
		CategoryRuleEditable: CategoryRuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			Label:    model.Label,
		},
		Links: CategoryRuleLinks{
			Self: fmt.Sprintf("%s/v1/category-rules/%s", baseURL(c), model.ID),
		},
	}
}

type CategoryRuleListResponse struct {
	Data       []CategoryRule `json:"data"`                                                          // List of category rules
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type CategoryRuleCreateResponse struct {
	Data  []CategoryRuleResponse `json:"data"`                                                          // List of the created category rules or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryRuleResponse struct {
	Data  *CategoryRule `json:"data"`                                                          // Data for the category rule
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryRuleQueryFilter struct {
	Priority uint   `form:"priority"`                   // By priority
	Label    string `form:"label"`                      // By label
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first rule returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of rules to return. Defaults to 50.
}

func (f CategoryRuleQueryFilter) model() models.CategoryRule {
	return models.CategoryRule{
		Priority: f.Priority,
		Label:    f.Label,
	}
}
