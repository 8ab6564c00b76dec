package events

import "sync"

// Recorder is a Sink that collects events in memory. It lets the engine be
// tested without any transport.
type Recorder struct {
	mu        sync.Mutex
	deposits  []DepositEvent
	withdraws []WithdrawEvent
	swaps     []SwapEvent
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Deposited(e DepositEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deposits = append(r.deposits, e)
	return nil
}

func (r *Recorder) Withdrawn(e WithdrawEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdraws = append(r.withdraws, e)
	return nil
}

func (r *Recorder) Swapped(e SwapEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swaps = append(r.swaps, e)
	return nil
}

// Deposits returns the recorded deposit events in emission order.
func (r *Recorder) Deposits() []DepositEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DepositEvent(nil), r.deposits...)
}

// Withdrawals returns the recorded withdrawal events in emission order.
func (r *Recorder) Withdrawals() []WithdrawEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]WithdrawEvent(nil), r.withdraws...)
}

// Swaps returns the recorded swap events in emission order.
func (r *Recorder) Swaps() []SwapEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SwapEvent(nil), r.swaps...)
}
