package queries

import (
	"errors"

	"topocanvas/application/history"
	"topocanvas/pkg/common"
)

// GetHistoryQuery asks for the undo/redo stack listing, paginated from
// the most recent entry backwards
type GetHistoryQuery struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Validate validates the query
func (q GetHistoryQuery) Validate() error {
	if q.Page < 0 || q.PageSize < 0 {
		return errors.New("page and page_size must be non-negative")
	}
	return nil
}

// GetHistoryResult is the stack listing
type GetHistoryResult struct {
	Undo       []history.ActionInfo   `json:"undo"`
	Redo       []history.ActionInfo   `json:"redo"`
	CanUndo    bool                   `json:"can_undo"`
	CanRedo    bool                   `json:"can_redo"`
	Pagination *common.PaginationInfo `json:"pagination,omitempty"`
}
