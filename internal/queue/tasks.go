package queue

import (
	"encoding/json"
	"fmt"

	"github.com/silkloom/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCustomOrderSubmitted 新定制需求通知店铺任务
	TaskCustomOrderSubmitted = constants.TaskCustomOrderSubmitted
	// TaskCustomOrderStatusChanged 定制需求状态变更通知任务
	TaskCustomOrderStatusChanged = constants.TaskCustomOrderStatusChanged
	// TaskOrderPlaced 下单确认任务
	TaskOrderPlaced = constants.TaskOrderPlaced
)

// CustomOrderSubmittedPayload 新定制需求任务载荷
type CustomOrderSubmittedPayload struct {
	RequestID uint   `json:"request_id"`
	Locale    string `json:"locale,omitempty"`
}

// CustomOrderStatusChangedPayload 定制需求状态变更任务载荷
type CustomOrderStatusChangedPayload struct {
	RequestID  uint   `json:"request_id"`
	FromStatus string `json:"from_status"`
	Status     string `json:"status"`
	Locale     string `json:"locale,omitempty"`
}

// OrderPlacedPayload 下单确认任务载荷
type OrderPlacedPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale,omitempty"`
}

// NewCustomOrderSubmittedTask 创建新定制需求任务
func NewCustomOrderSubmittedTask(payload CustomOrderSubmittedPayload) (*asynq.Task, error) {
	return newJSONTask(TaskCustomOrderSubmitted, payload)
}

// NewCustomOrderStatusChangedTask 创建定制需求状态变更任务
func NewCustomOrderStatusChangedTask(payload CustomOrderStatusChangedPayload) (*asynq.Task, error) {
	return newJSONTask(TaskCustomOrderStatusChanged, payload)
}

// NewOrderPlacedTask 创建下单确认任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderPlaced, payload)
}

// DecodePayload 解析任务载荷
func DecodePayload(task *asynq.Task, dest interface{}) error {
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), dest); err != nil {
		return fmt.Errorf("decode %s payload failed: %w", task.Type(), err)
	}
	return nil
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
