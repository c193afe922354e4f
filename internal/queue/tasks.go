package queue

import (
	"encoding/json"

	"github.com/Deekshith-46/brain-buzz/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPurchaseTimeoutCancel cancels a pending purchase whose payment window lapsed
	TaskPurchaseTimeoutCancel = constants.TaskPurchaseTimeoutCancel
)

// PurchaseTimeoutCancelPayload carries the purchase to cancel
type PurchaseTimeoutCancelPayload struct {
	PurchaseID uint `json:"purchase_id"`
}

// NewPurchaseTimeoutCancelTask builds the timeout-cancel task
func NewPurchaseTimeoutCancelTask(payload PurchaseTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPurchaseTimeoutCancel, body), nil
}
