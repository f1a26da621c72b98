package core

// TickResult is returned by a logic stepper after one simulation step.
// The zero value means the session continues.
type TickResult struct {
	Died    bool   // The step reached a terminal condition
	Message string // Why the session ended, shown to the player
}

// Continue returns a result that keeps the session going.
func Continue() TickResult {
	return TickResult{}
}

// Died returns a terminal result carrying the given detail message.
func Died(message string) TickResult {
	return TickResult{Died: true, Message: message}
}
