// Package serial provides the serial side channel of the Game Boy.
// Rather than shifting bits out to a linked device, a transfer
// request with the internal clock immediately emits the byte in
// types.SB to a writer and completes the transfer.
package serial

import (
	"io"

	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Controller is the serial controller. After every step it checks
// types.SC for a transfer request, and writes types.SB to the
// attached writer when one is found.
type Controller struct {
	mem mmu.Bus
	w   io.Writer

	transferred uint64 // the number of bytes that have been transferred.
}

// NewController creates a new Controller writing to w. If w is
// nil, transferred bytes are discarded.
func NewController(mem mmu.Bus, w io.Writer) *Controller {
	if w == nil {
		w = io.Discard
	}
	return &Controller{mem: mem, w: w}
}

// Attach attaches a writer to the Controller.
func (c *Controller) Attach(w io.Writer) {
	c.w = w
}

// Poll completes a pending transfer. When types.SC holds
// types.SerialTransferRequest, the byte in types.SB is written
// and types.SC is cleared.
func (c *Controller) Poll() error {
	if c.mem.Read(types.SC) != types.SerialTransferRequest {
		return nil
	}

	c.mem.Write(types.SC, 0x00)
	c.transferred++
	_, err := c.w.Write([]byte{c.mem.Read(types.SB)})
	return err
}

// Transferred returns the number of bytes written.
func (c *Controller) Transferred() uint64 {
	return c.transferred
}
