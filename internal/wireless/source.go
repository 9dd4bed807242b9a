package wireless

import "context"

// LinkSource polls point-in-time link statistics.
type LinkSource interface {
	// PollLinkStats fills ls with a fresh poll. Fields the driver does not
	// report are left zero; an error means nothing usable was collected.
	PollLinkStats(ctx context.Context, ls *LinkStats) error
}

// ScanSource drives spectrum scans on one interface.
type ScanSource interface {
	TriggerScan(ctx context.Context) error
	WaitForScanEvent(ctx context.Context) (ScanEvent, error)
	FetchScanDump(ctx context.Context) ([]BSS, error)

	IsInterfaceUp() (bool, error)
	SetInterfaceUp() error
	SetInterfaceDown() error
	HasAdminCapability() bool
}

// Source is everything the dashboard needs from one interface.
type Source interface {
	LinkSource
	ScanSource
	Interface() Interface
	Close() error
}
