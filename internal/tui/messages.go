package tui

// BoardChangedMsg is sent after the store applies a change, whether it
// came from this board or from a command sharing the store
type BoardChangedMsg struct{}

// DismissNotificationMsg removes a toast once its time is up
type DismissNotificationMsg struct {
	ID int
}
