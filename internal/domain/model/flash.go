package model

import "time"

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Display delays for transient messages.
const (
	FlashProfileDelay  = 1500 * time.Millisecond
	FlashAccountsDelay = 2 * time.Second
	FlashDefaultDelay  = 3 * time.Second
	FlashLongDelay     = 5 * time.Second
)

type Flash struct {
	Message string    `json:"message"`
	Kind    FlashKind `json:"kind"`
}
