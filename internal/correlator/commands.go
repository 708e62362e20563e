package correlator

import "github.com/Surachart01/KMS/internal/domain"

// Inbox messages. User commands come from the UI; results come back from
// background tasks tagged with the attempt they belong to.
type (
	selectSlotCmd    struct{ slot domain.SlotRef }
	requestReturnCmd struct{}
	identityCmd      struct{ evt domain.IdentityEvent }
	confirmReasonCmd struct{ text string }
	cancelCmd        struct{}
	homeCmd          struct{}
	browseKeysCmd    struct{}
	snapshotCmd      struct{ reply chan State }

	successElapsed struct{ attempt string }
	keysResult     struct {
		attempt string
		keys    []domain.SlotRef
		err     error
	}
	borrowResult struct {
		attempt    string
		receipt    *domain.BorrowReceipt
		err        error
		withReason bool
	}
	returnResult struct {
		attempt string
		receipt *domain.ReturnReceipt
		err     error
	}
)
