package diag

// Reporter receives diagnostics from pipeline phases.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string, notes []Note)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, subject, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Subject: subject,
		Message: msg, Notes: notes,
	})
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string, []Note) {}

// ReportError reports err through r, keeping its code when it carries one.
func ReportError(r Reporter, subject string, err error) {
	if r == nil || err == nil {
		return
	}
	d := FromError(subject, err)
	r.Report(d.Code, d.Severity, d.Subject, d.Message, d.Notes)
}
