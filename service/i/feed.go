package i

import (
	dmn "github.com/mazehub/mazehub-api/domain"
)

// MazeFeed fans maze list snapshots out to live subscribers. Publishing
// never blocks; subscribers that stop draining are dropped.
type MazeFeed interface {
	// Publish hands the latest full list to every subscriber.
	Publish([]*dmn.Maze)

	// Subscribe registers a listener and returns its channel together
	// with a cancel function that must be called when done.
	Subscribe() (<-chan []*dmn.Maze, func())
}
