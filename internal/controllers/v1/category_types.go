package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/ledger"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name string                 `json:"name" example:"Groceries"` // Name of the category, unique across all categories
	Type ledger.TransactionType `json:"type" example:"EXPENSE"`   // INCOME or EXPENSE. Defaults to EXPENSE.
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name: editable.Name,
		Type: editable.Type,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions booked on this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := baseURL(c)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name: model.Name,
			Type: model.Type,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Type   ledger.TransactionType `form:"type"`                       // By type
	Name   string                 `form:"name" filterField:"false"`   // By name, case-insensitive
	Offset uint                   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int                    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	if f.Type != "" && !f.Type.Valid() {
		return models.Category{}, errTransactionTypeInvalid
	}

	return models.Category{
		Type: f.Type,
	}, nil
}

// CategoryResolveRequest is the label to resolve to a category.
type CategoryResolveRequest struct {
	Label string `json:"label" example:"groceries"` // Free-text category label
}

// CategoryResolution is the outcome of resolving a label. Nothing is
// created when resolving.
type CategoryResolution struct {
	Found      bool              `json:"found" example:"true"`                                      // Whether an existing category matches the label
	CategoryID *uuid.UUID        `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the matching category
	Create     *CategoryEditable `json:"create"`                                                    // Category that would be created for the label
}

type CategoryResolutionResponse struct {
	Data  *CategoryResolution `json:"data"`                                                        // The resolution
	Error *string             `json:"error" example:"a category or subcategory label is required"` // The error, if any occurred
}

func newCategoryResolution(r ledger.Resolution) CategoryResolution {
	if r.Found() {
		id := r.CategoryID
		return CategoryResolution{Found: true, CategoryID: &id}
	}

	return CategoryResolution{
		Create: &CategoryEditable{
			Name: r.Create.Name,
			Type: r.Create.Type,
		},
	}
}
