package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameplan-service/internal/display"
)

// LiveFeed republishes live snapshots after a write.
type LiveFeed interface {
	RefreshChats(ctx context.Context) error
	RefreshMessages(ctx context.Context, chatID int) error
	ChatDeleted(ctx context.Context, chatID int) error
}

type batchDeleteRequest struct {
	IDs []int `json:"ids" binding:"required"`
}

type batchDeleteResult struct {
	ID      int    `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

func parseID(c *gin.Context, param, label string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " id"})
		return 0, false
	}
	return id, true
}

// writeFailed reports a store write that did not go through.
func writeFailed(c *gin.Context, op string, err error) {
	slog.Error("store write failed", "op", op, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to %s: %v", op, err)})
}

// deleteBatch toggles each requested id into a selection once, so repeated
// ids do not cancel out, and removes them independently.
func deleteBatch(ctx context.Context, ids []int, remove func(context.Context, int) error) ([]batchDeleteResult, int) {
	sel := display.NewSelection[int]()
	for _, id := range ids {
		if !sel.Has(id) {
			sel.Toggle(id)
		}
	}

	outcomes := display.DeleteSelected(ctx, sel, remove)
	results := make([]batchDeleteResult, 0, len(outcomes))
	deleted := 0
	for _, o := range outcomes {
		r := batchDeleteResult{ID: o.ID, Deleted: o.Err == nil}
		if o.Err != nil {
			r.Error = o.Err.Error()
		} else {
			deleted++
		}
		results = append(results, r)
	}
	sel.Clear()
	return results, deleted
}

func refresh(op string, err error) {
	if err != nil {
		slog.Warn("live snapshot refresh failed", "op", op, "err", err)
	}
}
