package tui

// ViewContext provides read-only render context to panels, replacing
// direct access to *DashboardModel.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	Compact       bool // narrow-terminal rendering
}
