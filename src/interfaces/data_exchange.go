package interfaces

import "portfolio-observer/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger is the rendering-consumer boundary: whatever serves the
// aggregate snapshot to the outside world implements this.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// Start runs the serving surface (blocking).
	Start() error

	// -----------------------------------------------------------------------------

	// UpdateSnapshot replaces the latest served state.
	UpdateSnapshot(snap *models.MSnapshot)

	// -----------------------------------------------------------------------------

	// Broadcast pushes a snapshot to all connected clients.
	Broadcast(snap *models.MSnapshot)

	// -----------------------------------------------------------------------------

	Stop() error
}
