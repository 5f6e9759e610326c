package standings

// DialogState is the lifecycle of one of the login/create/edit dialogs.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	// DialogSubmitting disables the submit control until the request settles.
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

type dialog struct {
	state DialogState
}

func (d *dialog) open() {
	if d.state == DialogClosed {
		d.state = DialogOpen
	}
}

// cancel closes the dialog unless a request is in flight.
func (d *dialog) cancel() error {
	if d.state == DialogSubmitting {
		return ErrSubmitInFlight
	}
	d.state = DialogClosed
	return nil
}

// begin moves the dialog to submitting, opening it first if needed.
func (d *dialog) begin() error {
	if d.state == DialogSubmitting {
		return ErrSubmitInFlight
	}
	d.state = DialogSubmitting
	return nil
}

// settle ends a submission: success closes, failure leaves the dialog open.
func (d *dialog) settle(ok bool) {
	if ok {
		d.state = DialogClosed
		return
	}
	d.state = DialogOpen
}
