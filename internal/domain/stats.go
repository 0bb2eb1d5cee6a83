package domain

// SellerStats backs the seller dashboard summary.
type SellerStats struct {
	ApprovedListings    int `json:"approved_listings"`
	PendingListings     int `json:"pending_listings"`
	RejectedListings    int `json:"rejected_listings"`
	PendingChatRequests int `json:"pending_chat_requests"`
	ActiveChats         int `json:"active_chats"`
	MessagesSentToday   int `json:"messages_sent_today"`
	MessagesRemaining   int `json:"messages_remaining"`
}
