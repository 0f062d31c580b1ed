package domain

import "time"

type NotificationType string

const (
	NotificationSwapRequested NotificationType = "swap_requested"
	NotificationSwapApproved  NotificationType = "swap_approved"
	NotificationSwapDenied    NotificationType = "swap_denied"
	NotificationSwapCancelled NotificationType = "swap_cancelled"
)

type Notification struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"userID"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	ReferenceID *int64           `json:"referenceID,omitempty"` // usually a swap request id
	IsRead      bool             `json:"isRead"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// QueueMessage is what gets published to the notification queue; the notify
// worker turns it into an email.
type QueueMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SwapRequestedMailData struct {
	FullName   string `json:"fullName"`
	SenderName string `json:"senderName"`
	DutyDate   string `json:"dutyDate"`
	Message    string `json:"message"`
}

type SwapRespondedMailData struct {
	FullName        string `json:"fullName"`
	ResponderName   string `json:"responderName"`
	Approved        bool   `json:"approved"`
	ResponseMessage string `json:"responseMessage"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
