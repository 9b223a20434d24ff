package service

import (
	"strings"

	"github.com/silkloom/storefront/internal/constants"
)

// customOrderTransitions 定制需求允许的状态流转（同状态写入为幂等空操作）
var customOrderTransitions = map[string][]string{
	constants.CustomOrderStatusNew: {
		constants.CustomOrderStatusInProgress,
		constants.CustomOrderStatusCompleted,
		constants.CustomOrderStatusCancelled,
	},
	constants.CustomOrderStatusInProgress: {
		constants.CustomOrderStatusCompleted,
		constants.CustomOrderStatusCancelled,
	},
	constants.CustomOrderStatusCompleted: {},
	constants.CustomOrderStatusCancelled: {},
}

// orderTransitions 订单允许的状态流转
var orderTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// NormalizeCustomOrderStatus 规范化定制需求状态，未知状态返回空串
func NormalizeCustomOrderStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := customOrderTransitions[status]; ok {
		return status
	}
	return ""
}

// NormalizeOrderStatus 规范化订单状态，未知状态返回空串
func NormalizeOrderStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := orderTransitions[status]; ok {
		return status
	}
	return ""
}

// CanTransitionCustomOrder 判断定制需求状态能否从 from 变更为 to
func CanTransitionCustomOrder(from, to string) bool {
	return canTransition(customOrderTransitions, from, to)
}

// CanTransitionOrder 判断订单状态能否从 from 变更为 to
func CanTransitionOrder(from, to string) bool {
	return canTransition(orderTransitions, from, to)
}

func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		_, ok := table[from]
		return ok
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
