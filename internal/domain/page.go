package domain

// Page names the screens the correlator can navigate to.
type Page string

const (
	PageHome              Page = "home"
	PageKeyList           Page = "key_list"
	PageScanWaiting       Page = "scan_waiting"
	PageScanWaitingReturn Page = "scan_waiting_return"
	PageConfirmIdentity   Page = "confirm_identity"
	PageReason            Page = "reason"
	PageSuccess           Page = "success"
)

// Operation distinguishes the two business transactions.
type Operation string

const (
	OperationBorrow Operation = "borrow"
	OperationReturn Operation = "return"
)

// View is everything a page needs to render. Fields irrelevant to a page are
// left at their zero value.
type View struct {
	Page      Page
	Operation Operation
	SubjectID string
	Slot      *SlotRef
	Keys      []SlotRef
	Reasons   []string

	Borrow *BorrowReceipt
	Return *ReturnReceipt

	// ActuatorFailed marks a borrow that succeeded at the backend but whose
	// slot could not be opened.
	ActuatorFailed   bool
	CountdownSeconds int
}
