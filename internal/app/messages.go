package app

import "time"

// TickMsg triggers a frame update.
type TickMsg time.Time

// FatalMsg reports a background failure that ends the program.
type FatalMsg struct {
	Err error
}

// NoticeMsg shows a transient message in the status bar.
type NoticeMsg struct {
	Text string
}
