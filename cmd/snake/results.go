package main

import (
	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// resultStore persists finished sessions for the controller.
type resultStore struct {
	store *storage.Store
}

var _ app.ResultSaver = resultStore{}

// SaveSessionResult records r as a session in the store.
func (r resultStore) SaveSessionResult(res app.SessionResult) error {
	_, err := r.store.SaveSession(storage.SessionRecord{
		SessionID:     res.SessionID,
		Detail:        res.Detail,
		FruitsEaten:   res.FruitsEaten,
		SecondsPlayed: res.SecondsPlayed,
		TickMS:        res.TickMS,
	})
	return err
}
