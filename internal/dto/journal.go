package dto

// ReverseJournalEntryRequest is the payload of POST /journal-entries/:entry_id/reverse.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
