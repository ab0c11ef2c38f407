package session

// Severity of a notice shown to the operator.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notice is operator feedback produced while processing a scan. Dialog notices must be
// dismissed explicitly.
type Notice struct {
	Severity Severity
	Title    string
	Message  string
	Dialog   bool
}

func Info(msg string) Notice { return Notice{Severity: SeverityInfo, Message: msg} }
func Success(msg string) Notice { return Notice{Severity: SeveritySuccess, Message: msg} }
func Warning(msg string) Notice { return Notice{Severity: SeverityWarning, Message: msg} }

func Danger(title, msg string) Notice {
	return Notice{Severity: SeverityDanger, Title: title, Message: msg}
}

func Dialog(title, msg string) Notice {
	return Notice{Severity: SeverityDanger, Title: title, Message: msg, Dialog: true}
}
