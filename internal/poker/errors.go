package poker

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrSessionStarted   = errors.New("session has already started, cannot join now")
	ErrNotReady         = errors.New("no stories available")
	ErrIncompleteVoting = errors.New("not all participants have voted yet")
	ErrInvalidCard      = errors.New("vote must be a valid fibonacci card")
	ErrNoConsensus      = errors.New("cannot proceed to next story without consensus")
	ErrNotLeader        = errors.New("only the room leader can perform this action")
	ErrStoryMismatch    = errors.New("story does not match the current story")
	ErrStorage          = errors.New("storage operation failed")
)

// storageError оборачивает ошибку хранилища, сохраняя ErrStorage для errors.Is
func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
