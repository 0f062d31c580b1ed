package domain

import "time"

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "PENDING"
	SwapStatusApproved  SwapStatus = "APPROVED"
	SwapStatusDenied    SwapStatus = "DENIED"
	SwapStatusCancelled SwapStatus = "CANCELLED"
)

// SwapRequest proposes exchanging ownership of the sender's duty for the
// target duty. It is created PENDING and transitions exactly once.
type SwapRequest struct {
	ID              int64      `json:"id"`
	SenderID        int64      `json:"senderID"`
	ReceiverID      int64      `json:"receiverID"`
	SenderDutyID    int64      `json:"senderDutyID"`
	TargetDutyID    int64      `json:"targetDutyID"`
	Message         string     `json:"message,omitempty"`
	Status          SwapStatus `json:"status"`
	ResponseMessage string     `json:"responseMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	Version         int32      `json:"-"`
}
