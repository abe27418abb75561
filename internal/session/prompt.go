package session

// Prompter is how a surface shows blocking notifications and asks yes/no questions
type Prompter interface {
	Alert(message string)
	Confirm(message string) bool
}

// Prompts adapts plain functions to a Prompter.
// A nil AlertFunc drops alerts; a nil ConfirmFunc declines.
type Prompts struct {
	AlertFunc   func(message string)
	ConfirmFunc func(message string) bool
}

func (p Prompts) Alert(message string) {
	if p.AlertFunc != nil {
		p.AlertFunc(message)
	}
}

func (p Prompts) Confirm(message string) bool {
	if p.ConfirmFunc == nil {
		return false
	}
	return p.ConfirmFunc(message)
}

// Confirmed answers yes without asking, for surfaces that already asked
var Confirmed Prompter = Prompts{ConfirmFunc: func(string) bool { return true }}

// Recorder collects alerts and answers confirmations with a fixed reply
type Recorder struct {
	Reply    bool
	Alerts   []string
	Confirms []string
}

func (r *Recorder) Alert(message string) {
	r.Alerts = append(r.Alerts, message)
}

func (r *Recorder) Confirm(message string) bool {
	r.Confirms = append(r.Confirms, message)
	return r.Reply
}

// LastAlert returns the most recent alert, or "" if there was none
func (r *Recorder) LastAlert() string {
	if len(r.Alerts) == 0 {
		return ""
	}
	return r.Alerts[len(r.Alerts)-1]
}
