package classifier

import (
	"time"

	"classifyd/pkg/types"
)

// State returns the current classifier state.
func (c *Classifier) State() State {
	if !c.Ready() {
		return StateError
	}
	return StateReady
}

// Status builds a detailed status response for /status.
func (c *Classifier) Status() types.StatusResponse {
	model, loadErr := c.current()
	state := StateReady
	if model == nil {
		state = StateError
	}
	now := time.Now()
	resp := types.StatusResponse{
		State:                string(state),
		Model:                c.info,
		Labels:               c.Labels(),
		ImageSize:            c.size,
		ClassificationsTotal: c.classified.Load(),
		FailuresTotal:        c.failed.Load(),
		UptimeSeconds:        int64(now.Sub(c.startTime) / time.Second),
		ServerTimeUnix:       now.Unix(),
	}
	if model == nil && loadErr != nil {
		resp.Error = loadErr.Error()
	}
	return resp
}
